package model

import "fmt"

// DriveStreamURLTemplate builds a direct link for a Drive file ID
const DriveStreamURLTemplate = "https://drive.google.com/uc?id=%s"

// DriveFolder is a folder listed from Google Drive
type DriveFolder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label renders the folder the way list widgets show it
func (f DriveFolder) Label() string {
	return fmt.Sprintf("%s (ID: %s)", f.Name, f.ID)
}

// DriveVideo is a video-typed file inside a Drive folder
type DriveVideo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"`
}

// Label renders the video the way list widgets show it
func (v DriveVideo) Label() string {
	return fmt.Sprintf("%s (ID: %s)", v.Name, v.ID)
}

// StreamURL returns the link handed to the external player
func (v DriveVideo) StreamURL() string {
	return fmt.Sprintf(DriveStreamURLTemplate, v.ID)
}
