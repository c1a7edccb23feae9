package resolver

import (
	"context"
	"fmt"
	"io"
	"medimarket-service/internal/app/contracts"
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/constvars"
	"medimarket-service/internal/pkg/exceptions"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

const maxDocumentBytes = 1 << 20

// gatewayResolver reads ipfs and plain http(s) documents through an HTTP
// gateway. It cannot publish.
type gatewayResolver struct {
	BaseUrl    string
	HTTPClient *http.Client
}

func NewGatewayResolver(baseUrl string, httpClient *http.Client) contracts.ContentResolver {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &gatewayResolver{
		BaseUrl:    strings.TrimRight(baseUrl, "/"),
		HTTPClient: httpClient,
	}
}

func (r *gatewayResolver) Fetch(ctx context.Context, contentRef string) (models.ContentDocument, error) {
	scheme, target := classifyRef(contentRef)

	var url string
	switch scheme {
	case schemeIPFS:
		url = fmt.Sprintf("%s/ipfs/%s", r.BaseUrl, target)
	case schemeHTTP:
		url = target
	default:
		return nil, exceptions.NewResolutionError(contentRef, exceptions.ErrUnsupportedContentRef)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		return nil, exceptions.NewResolutionError(contentRef, fmt.Errorf("gateway responded with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}

	var document models.ContentDocument
	err = json.Unmarshal(body, &document)
	if err != nil {
		return nil, exceptions.NewResolutionError(contentRef, err)
	}
	if document == nil {
		return nil, exceptions.NewResolutionError(contentRef, fmt.Errorf("document is not a JSON object"))
	}
	return document, nil
}

func (r *gatewayResolver) Put(ctx context.Context, document models.ContentDocument, meta models.ContentMeta) (string, error) {
	return "", exceptions.NewUploadError(exceptions.ErrReadOnlyResolver)
}
