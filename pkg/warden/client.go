package warden

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to a warden server over HTTP/JSON. Transport security is
// required unless explicitly waived for local development.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func Dial(addr string, opts ...DialOption) (*Client, error) {
	config := &dialOptions{}

	for _, opt := range opts {
		opt(config)
	}

	scheme := "https"
	transport := &http.Transport{}

	switch {
	case config.tlsConfig != nil:
		transport.TLSClientConfig = config.tlsConfig
	case config.insecure:
		scheme = "http"
	default:
		return nil, ErrNoTransportSecurity
	}

	return &Client{
		baseURL: fmt.Sprintf("%s://%s", scheme, addr),
		httpClient: &http.Client{
			Transport: transport,
		},
	}, nil
}

type DialOption func(*dialOptions)

func WithTLSConfig(config *tls.Config) DialOption {
	return func(o *dialOptions) {
		o.tlsConfig = config
	}
}

// WithoutTransportSecurity is for tests and local development only.
func WithoutTransportSecurity() DialOption {
	return func(o *dialOptions) {
		o.insecure = true
	}
}

type dialOptions struct {
	tlsConfig *tls.Config
	insecure  bool
}

type authorizeRequest struct {
	Principal    Principal    `json:"principal"`
	Action       Action       `json:"action"`
	ResourceType ResourceType `json:"resource_type"`
}

type authorizeResponse struct {
	Decision Decision `json:"decision"`
}

func (c *Client) Authorize(ctx context.Context, principal Principal, action Action, resourceType ResourceType) (Decision, error) {
	var res authorizeResponse
	err := c.do(ctx, http.MethodPost, "/v1/authorize", authorizeRequest{
		Principal:    principal,
		Action:       action,
		ResourceType: resourceType,
	}, &res)
	if err != nil {
		return DecisionDeny, err
	}

	return res.Decision, nil
}

type provisionGroupsRequest struct {
	Definitions []GroupDefinition `json:"definitions"`
}

func (c *Client) ProvisionGroups(ctx context.Context, definitions ...GroupDefinition) error {
	return c.do(ctx, http.MethodPost, "/v1/groups/provision", provisionGroupsRequest{
		Definitions: definitions,
	}, nil)
}

type createGroupRequest struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

type groupResponse struct {
	Group Group `json:"group"`
}

func (c *Client) CreateGroup(ctx context.Context, name string, permissions ...Permission) (Group, error) {
	var res groupResponse
	err := c.do(ctx, http.MethodPost, "/v1/groups", createGroupRequest{
		Name:        name,
		Permissions: permissions,
	}, &res)
	if err != nil {
		return Group{}, err
	}

	return res.Group, nil
}

func (c *Client) DeleteGroup(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/v1/groups/"+url.PathEscape(name), nil, nil)
}

type listGroupPermissionsResponse struct {
	Permissions []Permission `json:"permissions"`
}

func (c *Client) ListGroupPermissions(ctx context.Context, name string) ([]Permission, error) {
	var res listGroupPermissionsResponse
	err := c.do(ctx, http.MethodGet, "/v1/groups/"+url.PathEscape(name)+"/permissions", nil, &res)
	if err != nil {
		return nil, err
	}

	return res.Permissions, nil
}

type assignmentRequest struct {
	Principal Principal `json:"principal"`
}

func (c *Client) AssignPrincipal(ctx context.Context, groupName string, principal Principal) error {
	return c.do(ctx, http.MethodPost, "/v1/groups/"+url.PathEscape(groupName)+"/assignments", assignmentRequest{
		Principal: principal,
	}, nil)
}

func (c *Client) UnassignPrincipal(ctx context.Context, groupName string, principal Principal) error {
	return c.do(ctx, http.MethodDelete, "/v1/groups/"+url.PathEscape(groupName)+"/assignments", assignmentRequest{
		Principal: principal,
	}, nil)
}

type listPrincipalGroupsResponse struct {
	Groups []Group `json:"groups"`
}

func (c *Client) ListPrincipalGroups(ctx context.Context, principal Principal) ([]Group, error) {
	query := url.Values{}
	query.Set("principal_id", principal.ID)
	query.Set("issuer", principal.Issuer)

	var res listPrincipalGroupsResponse
	err := c.do(ctx, http.MethodGet, "/v1/memberships?"+query.Encode(), nil, &res)
	if err != nil {
		return nil, err
	}

	return res.Groups, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, into interface{}) error {
	var reqBody *bytes.Buffer = &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ErrFailedToConnect
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp.StatusCode, resp.Body)
	}

	if into == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(into)
}

func errorFromResponse(status int, body io.Reader) error {
	var res struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(body).Decode(&res)

	for _, known := range []error{
		ErrGroupNotFound,
		ErrGroupAlreadyExists,
		ErrMembershipNotFound,
		ErrMembershipAlreadyExists,
		ErrPrincipalNotFound,
		ErrPrincipalAlreadyExists,
		ErrInvalidAction,
		ErrProvisioningConflict,
	} {
		if res.Error == known.Error() {
			return known
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	default:
		return ErrUnknown
	}
}
