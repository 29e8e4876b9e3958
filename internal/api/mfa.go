package api

import (
	"context"
	"net/http"
)

// MFA delivery options accepted by the verification endpoints.
const (
	MFAOptionEmail = "EMAIL"
	MFAOptionPhone = "PHONE_TEXT"
	MFAOptionToken = "TOKEN"
)

// MFAInfo is the verification endpoints' uniform reply.
type MFAInfo struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RequestMFACode asks the platform to deliver an authorization code via the
// given option. A 400 still carries a parseable MFAInfo with the reason.
func (s *Session) RequestMFACode(ctx context.Context, option string) (*MFAInfo, error) {
	body := map[string]string{"authOption": option}
	var info MFAInfo
	err := s.do(ctx, http.MethodPost,
		"verification/api/identity_verification/request_authorization_code",
		nil, body, &info, http.StatusOK, http.StatusBadRequest)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// SubmitMFACode verifies a previously delivered (or generated) code.
func (s *Session) SubmitMFACode(ctx context.Context, option, code string) (*MFAInfo, error) {
	body := map[string]string{"authOption": option, "authorizationCode": code}
	var info MFAInfo
	err := s.do(ctx, http.MethodPost,
		"verification/api/identity_verification/verify_authorization_code",
		nil, body, &info, http.StatusOK, http.StatusBadRequest)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
