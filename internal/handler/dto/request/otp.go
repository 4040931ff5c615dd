package request

type GenerateOTPRequest struct {
	Purpose string `json:"purpose" binding:"required,oneof=booking_confirmation booking_modification booking_cancellation"`
}

type VerifyOTPRequest struct {
	Code string `json:"code" binding:"required,otpcode"`
}
