package domain

import (
	"context"
	"time"
)

// CVUpload is a resume file received from a client.
type CVUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// CVRef points at a stored resume object. URL is a retrieval URL that may
// expire; Key addresses the object for re-presigning.
type CVRef struct {
	URL        string    `json:"url"`
	Name       string    `json:"name"`
	Key        string    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ProfileCVKey addresses the canonical per-user CV. One slot per user;
// each upload overwrites the previous.
func ProfileCVKey(userID string) string {
	return "cvs/" + userID + "/resume.pdf"
}

// ApplicationCVKey addresses the immutable per-application snapshot.
func ApplicationCVKey(applicationID string) string {
	return "applications/" + applicationID + "/resume.pdf"
}

// CVStore owns resume binary storage. Implementations validate nothing;
// callers run uploads through the CV validator first.
type CVStore interface {
	PutProfileCV(ctx context.Context, userID string, up *CVUpload) (*CVRef, error)
	PutApplicationCV(ctx context.Context, applicationID string, up *CVUpload) (*CVRef, error)
	// FreshURL presigns a new retrieval URL. Previously issued URLs must
	// be treated as expired rather than cached.
	FreshURL(ctx context.Context, key string) (string, error)
}
