package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// MatrixVerifier checks a username/password pair against a Matrix homeserver
// login endpoint. The homeserver acts as the external identity collaborator;
// no Matrix session is kept, only the verification result.
type MatrixVerifier struct {
	client  *resty.Client
	baseURL string
}

type matrixLoginRequest struct {
	Type       string           `json:"type"`
	Identifier matrixIdentifier `json:"identifier"`
	Password   string           `json:"password"`
}

type matrixIdentifier struct {
	Type string `json:"type"`
	User string `json:"user"`
}

type matrixLoginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
	ErrCode     string `json:"errcode"`
	Error       string `json:"error"`
}

func NewMatrixVerifier(baseURL string, opts ...func(*resty.Client)) (*MatrixVerifier, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("baseURL is required")
	}

	client := resty.New().
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	for _, opt := range opts {
		opt(client)
	}

	return &MatrixVerifier{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Verify returns the homeserver-resolved Matrix user id on success and false
// when the credentials are rejected.
func (v *MatrixVerifier) Verify(ctx context.Context, username, password string) (string, bool, error) {
	var result matrixLoginResponse

	resp, err := v.client.R().
		SetContext(ctx).
		SetBody(matrixLoginRequest{
			Type: "m.login.password",
			Identifier: matrixIdentifier{
				Type: "m.id.user",
				User: username,
			},
			Password: password,
		}).
		SetResult(&result).
		SetError(&result).
		Post(v.baseURL + "/_matrix/client/v3/login")
	if err != nil {
		return "", false, fmt.Errorf("matrix login: %w", err)
	}

	switch {
	case resp.StatusCode() == 200:
		return result.UserID, true, nil
	case resp.StatusCode() == 401 || resp.StatusCode() == 403:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("matrix login: homeserver responded with status %d", resp.StatusCode())
	}
}
