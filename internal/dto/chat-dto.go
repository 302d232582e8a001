package dto

type SendChatMessageDTO struct {
	Message string `json:"message" validate:"required,max=2000"`
}
