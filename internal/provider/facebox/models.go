package facebox

// EncodingsRequest for POST /encodings
type EncodingsRequest struct {
	Img   string `json:"img"`   // base64 encoded image
	Model string `json:"model"` // "hog" or "cnn" face locator
}

// EncodingsResponse from POST /encodings
type EncodingsResponse struct {
	Faces []FaceResult `json:"faces"`
}

// FaceResult is one detected face. Box follows the face_recognition
// convention: [top, right, bottom, left] in pixels.
type FaceResult struct {
	Box       []int     `json:"box"`
	Embedding []float64 `json:"embedding"`
}
