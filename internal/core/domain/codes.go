package domain

import "net/http"

// Kind enumerates the stable result and error codes exposed by the API.
type Kind int

const (
	KindGeneralError Kind = iota
	KindBadRequest
	KindDataNotFound
	KindInvalidCredentials
	KindInactiveUser
	KindUserNotFound
	KindRoleNotAllowed
	KindEmailSent
	KindNotificationFailed
	KindUserEmailExists
	KindUserNameExists
	KindWeakPassword
	KindUserCreated
	KindParkingCreated
	KindParkingEmailExists
	KindBusinessRuleViolation
	KindJWTExpired
	KindJWTInvalid
	KindRateLimitLogin
	KindRateLimitForgotPassword
	KindRateLimitGeneral
	KindInfrastructure
)

// CodeInfo is the wire representation attached to a Kind.
type CodeInfo struct {
	Code    string
	Message string
	Status  int
}

var codeTable = map[Kind]CodeInfo{
	KindGeneralError:            {Code: "PKU_GENERAL_ERROR", Message: "General error, please try in a moment", Status: http.StatusInternalServerError},
	KindBadRequest:              {Code: "PKU_BAD_REQUEST", Message: "The request is not in the correct format", Status: http.StatusBadRequest},
	KindDataNotFound:            {Code: "PKU_DATA_NOT_FOUND", Message: "Data not found, verify the information entered", Status: http.StatusBadRequest},
	KindInvalidCredentials:      {Code: "PKL_USER_NOT_FOUND", Message: "Invalid email or password", Status: http.StatusUnauthorized},
	KindInactiveUser:            {Code: "PKL_ROLE_NOT_ALLOWED", Message: "Contact your administrator to change your password.", Status: http.StatusForbidden},
	KindUserNotFound:            {Code: "PKL_USER_NOT_FOUND", Message: "Invalid email or password", Status: http.StatusUnauthorized},
	KindRoleNotAllowed:          {Code: "PKL_ROLE_NOT_ALLOWED", Message: "Contact your administrator to change your password.", Status: http.StatusForbidden},
	KindEmailSent:               {Code: "KHL_EMAIL_SENT", Message: "The mail was sent", Status: http.StatusOK},
	KindNotificationFailed:      {Code: "KHL_NOTIFICATION_FAILED", Message: "The notification could not be sent", Status: http.StatusBadGateway},
	KindUserEmailExists:         {Code: "PKL_USER_EMAIL_EXIST", Message: "User email, verify the information entered", Status: http.StatusConflict},
	KindUserNameExists:          {Code: "PKL_USER_NAME_EXIST", Message: "User name, verify the information entered", Status: http.StatusConflict},
	KindWeakPassword:            {Code: "PKL_WEAK_PASSWORD", Message: "Password does not meet the security requirements", Status: http.StatusBadRequest},
	KindUserCreated:             {Code: "PKU_USER_CREATE_OK", Message: "User create successfully", Status: http.StatusCreated},
	KindParkingCreated:          {Code: "PKL_PARKING_CREATE_OK", Message: "Parking create successfully", Status: http.StatusCreated},
	KindParkingEmailExists:      {Code: "PKL_USER_EMAIL_EXIST", Message: "Email is already registered for parking pre-enrollment", Status: http.StatusConflict},
	KindBusinessRuleViolation:   {Code: "PKL_BUSINESS_RULE_VIOLATION", Message: "Business rule violation", Status: http.StatusBadRequest},
	KindJWTExpired:              {Code: "PKL_JWT_EXPIRED", Message: "Token has expired. Please login again.", Status: http.StatusUnauthorized},
	KindJWTInvalid:              {Code: "PKL_JWT_INVALID", Message: "Invalid token. Please login again.", Status: http.StatusUnauthorized},
	KindRateLimitLogin:          {Code: "PKL_RATE_LIMIT_LOGIN", Message: "Too many login attempts. Please try again later.", Status: http.StatusTooManyRequests},
	KindRateLimitForgotPassword: {Code: "PKL_RATE_LIMIT_FORGOT_PASSWORD", Message: "Too many password reset requests. Please try again later.", Status: http.StatusTooManyRequests},
	KindRateLimitGeneral:        {Code: "PKL_RATE_LIMIT_GENERAL", Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	KindInfrastructure:          {Code: "PKU_GENERAL_ERROR", Message: "An unexpected error occurred", Status: http.StatusInternalServerError},
}

// Info returns the code, message and status registered for the kind.
// Unknown kinds resolve to the general error entry.
func (k Kind) Info() CodeInfo {
	if info, ok := codeTable[k]; ok {
		return info
	}
	return codeTable[KindGeneralError]
}

// Code is shorthand for Info().Code.
func (k Kind) Code() string {
	return k.Info().Code
}

func (k Kind) String() string {
	return k.Info().Code
}
