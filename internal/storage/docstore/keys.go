package docstore

// Key layout:
//
//	user/id/<userID>      -> user document
//	user/name/<username>  -> userID
//	user/email/<email>    -> userID
//	note/<ownerID>/<noteID> -> note document
//	list/<ownerID>/<listID> -> todo list document
//
// Notes and lists embed the owner in the key, so a foreign id can
// never resolve regardless of what the caller sends.

func userIDKey(userID string) []byte {
	return []byte("user/id/" + userID)
}

func userNameKey(username string) []byte {
	return []byte("user/name/" + username)
}

func userEmailKey(email string) []byte {
	return []byte("user/email/" + email)
}

func noteKey(ownerID, noteID string) []byte {
	return []byte("note/" + ownerID + "/" + noteID)
}

func notePrefix(ownerID string) []byte {
	return []byte("note/" + ownerID + "/")
}

func listKey(ownerID, listID string) []byte {
	return []byte("list/" + ownerID + "/" + listID)
}

func listPrefix(ownerID string) []byte {
	return []byte("list/" + ownerID + "/")
}
