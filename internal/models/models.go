package models

type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	Password       string `json:"-"`
	ProfilePicture []byte `json:"-"`
	QRCode         []byte `json:"-"`
}

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Day  string `json:"day"`
	Time string `json:"time"`
}

type ToDo struct {
	ID        int    `json:"id"`
	Task      string `json:"task"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

type FileData struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
}

type Album struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	AlbumName string `json:"album_name"`
}

type Picture struct {
	ID       int    `json:"id"`
	AlbumID  int    `json:"album_id"`
	Filename string `json:"filename"`
}
