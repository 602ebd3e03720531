package progress

import "github.com/sunthewhat/certgen-api/type/shared/model"

const (
	TypeProgress = "progress"
	TypeDone     = "done"
	TypeError    = "error"
)

type progressEvent struct {
	Type    string `json:"type"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

type doneEvent struct {
	Type           string               `json:"type"`
	Message        string               `json:"message"`
	Count          int                  `json:"count"`
	Certificates   []*model.Certificate `json:"certificates"`
	ZipDownloadURL string               `json:"zip_download_url"`
}

type errorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// Event is a decoded stream event of any type.
type Event struct {
	Type           string               `json:"type"`
	Current        int                  `json:"current"`
	Total          int                  `json:"total"`
	Message        string               `json:"message,omitempty"`
	Count          int                  `json:"count,omitempty"`
	Certificates   []*model.Certificate `json:"certificates,omitempty"`
	ZipDownloadURL string               `json:"zip_download_url,omitempty"`
	Error          string               `json:"error,omitempty"`
}

func (e *Event) Terminal() bool {
	return e.Type == TypeDone || e.Type == TypeError
}
