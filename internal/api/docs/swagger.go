package docs

import (
	"github.com/go-swagno/swagno"
	"github.com/go-swagno/swagno/components/endpoint"
	"github.com/go-swagno/swagno/components/mime"
	"github.com/go-swagno/swagno/components/http/response"
)

// MatchResultData is one accepted match in the find-matches response
type MatchResultData struct {
	PhotoURL    string  `json:"photoUrl" example:"http://localhost:9000/photos/party.jpg"`
	FaceID      string  `json:"faceId" example:"party.jpg_face0"`
	BoundingBox []int   `json:"boundingBox" example:"[34,220,180,80]"`
	Confidence  float64 `json:"confidence" example:"0.93"`
}

// MatchSummaryData summarizes the index scan behind a response
type MatchSummaryData struct {
	TotalMatchedPhotos   int     `json:"totalMatchedPhotos" example:"3"`
	TotalFacesConsidered int     `json:"totalFacesConsidered" example:"42"`
	MatchingThreshold    float64 `json:"matchingThreshold" example:"0.5"`
}

// FindMatchesResponseData is the find-matches response body
type FindMatchesResponseData struct {
	Matches []MatchResultData `json:"matches"`
	Summary MatchSummaryData  `json:"summary"`
}

// MatchedPhotoData is one matched photo in the selfie-search response
type MatchedPhotoData struct {
	Photo    string `json:"photo" example:"party.jpg"`
	PhotoURL string `json:"photoUrl" example:"http://localhost:9000/photos/party.jpg"`
}

// SelfieSearchResponseData is the selfie-search response body
type SelfieSearchResponseData struct {
	Photos  []MatchedPhotoData `json:"photos"`
	Summary MatchSummaryData   `json:"summary"`
}

// FindMatchesRequestData is the find-matches request body
type FindMatchesRequestData struct {
	Image     string  `json:"image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
	Threshold float64 `json:"threshold,omitempty" example:"0.5"`
}

// SelfieSearchRequestData is the selfie-search request body
type SelfieSearchRequestData struct {
	Image string `json:"image" example:"data:image/jpeg;base64,/9j/4AAQ..."`
}

// IndexPhotosResponseData is the indexing trigger response body
type IndexPhotosResponseData struct {
	Status       string `json:"status" example:"success"`
	FacesIndexed int    `json:"facesIndexed" example:"42"`
	RunID        string `json:"runId" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string `json:"code" example:"NO_FACE_DETECTED"`
	Message string `json:"message" example:"No face detected in the image"`
}

// NewSwagger builds the swagger document for the API
func NewSwagger() *swagno.Swagger {
	sw := swagno.New(swagno.Config{
		Title:       "Photodex API",
		Version:     "v1.0.0",
		Description: "Photo indexing and face matching over an S3-compatible photo store",
		Host:        "localhost:3000",
	})

	endpoints := []*endpoint.EndPoint{
		// POST /api/find-matches - confidence-ranked matching
		endpoint.New(
			endpoint.POST,
			"/api/find-matches",
			endpoint.WithTags("Matching"),
			endpoint.WithSummary("Find matching faces in indexed photos"),
			endpoint.WithDescription("Extracts the first face from the query image and returns every indexed face within the similarity threshold, ranked by descending confidence."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(FindMatchesRequestData{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(FindMatchesResponseData{}, "200", "Matches found"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image format or corrupted file"}, "415", "Unsupported Media Type"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INDEX_NOT_FOUND", Message: "No face index found, index photos first"}, "409", "Conflict"),
			}),
		),

		// POST /api/selfie-search - strict photo-level search
		endpoint.New(
			endpoint.POST,
			"/api/selfie-search",
			endpoint.WithTags("Matching"),
			endpoint.WithSummary("Find photos containing the selfie's face"),
			endpoint.WithDescription("Strict mode: the query image must contain exactly one face. Returns each photo with any face within the selfie threshold."),
			endpoint.WithConsume([]mime.MIME{mime.JSON}),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithBody(SelfieSearchRequestData{}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(SelfieSearchResponseData{}, "200", "Search completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "MULTIPLE_FACES", Message: "Multiple faces found, please provide a single clear face"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "NO_FACE_DETECTED", Message: "No face detected in the image"}, "422", "Unprocessable Entity"),
				response.New(ErrorResponse{Code: "INDEX_NOT_FOUND", Message: "No face index found, index photos first"}, "409", "Conflict"),
			}),
		),

		// POST /index-photos - trigger indexing run
		endpoint.New(
			endpoint.POST,
			"/index-photos",
			endpoint.WithTags("Indexing"),
			endpoint.WithSummary("Index the configured photo directory"),
			endpoint.WithDescription("Uploads every supported image to the blob store, extracts face embeddings, and rewrites the face index snapshot."),
			endpoint.WithProduce([]mime.MIME{mime.JSON}),
			endpoint.WithSuccessfulReturns([]response.Response{
				response.New(IndexPhotosResponseData{}, "200", "Indexing completed"),
			}),
			endpoint.WithErrors([]response.Response{
				response.New(ErrorResponse{Code: "SOURCE_DIR_NOT_FOUND", Message: "Photo source directory does not exist"}, "500", "Internal Server Error"),
			}),
		),
	}

	sw.AddEndpoints(endpoints)

	return sw
}
