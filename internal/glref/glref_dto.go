package glref

type CreateGlRefCodeRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type UpdateGlRefCodeRequest struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}
