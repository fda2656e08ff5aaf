package domain

// Entry is one captured wrong-answer record: a question image and its
// written answer. The image itself lives outside the store; only its path
// is kept.
type Entry struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
}
