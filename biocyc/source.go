package biocyc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/biocyc/go-biocyc/apierror"
	"github.com/biocyc/go-biocyc/model"
)

// DefaultBaseURL is the public endpoint of the BioCyc web services.
const DefaultBaseURL = "https://websvc.biocyc.org"

const getxmlPath = "getxml"

// Source is the interface the database uses to fetch one record from the
// remote service. It is called only after the throttle grants a slot.
type Source interface {
	// Fetch retrieves the record for ident at the given detail level and
	// parses it into its kind and raw attribute mapping.
	Fetch(ctx context.Context, ident model.Identity, detail model.Detail) (model.Kind, model.Attributes, error)
	// String returns a description of the source.
	String() string
}

// HTTPSource fetches records from the BioCyc getxml endpoint.
type HTTPSource struct {
	url    *url.URL
	client *http.Client
	header http.Header
}

var _ Source = (*HTTPSource)(nil)

// NewHTTPSource creates a Source reading from the service at srcURL. If
// client is nil then http.DefaultClient is used; callers wanting retry on
// transient failures should pass a retrying client.
func NewHTTPSource(srcURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(srcURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("url must have http or https scheme: %s", srcURL)
	}
	u = u.JoinPath(getxmlPath)

	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPSource{
		url:    u,
		client: client,
	}, nil
}

// AddHeader adds a header sent with every request, such as credentials for
// subscription-only organism databases.
func (s *HTTPSource) AddHeader(key, value string) {
	if s.header == nil {
		s.header = make(map[string][]string)
	}
	s.header.Add(key, value)
}

func (s *HTTPSource) Fetch(ctx context.Context, ident model.Identity, detail model.Detail) (model.Kind, model.Attributes, error) {
	u := *s.url
	q := url.Values{}
	q.Set("id", ident.String())
	if detail != "" {
		q.Set("detail", string(detail))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.KindUnknown, nil, err
	}
	for key, vals := range s.header {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	req.Header.Add("Accept", "application/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return model.KindUnknown, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.KindUnknown, nil, err
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return model.KindUnknown, nil, fmt.Errorf("%s: %w", ident, ErrNotFound)
		}
		return model.KindUnknown, nil, apierror.FromResponse(resp.StatusCode, body)
	}

	kind, attrs, err := model.ParseEntity(bytes.NewReader(body))
	if err != nil {
		// The service answers some unknown identifiers with an OK status and
		// a payload holding no record.
		if errors.Is(err, model.ErrNoEntity) {
			return model.KindUnknown, nil, fmt.Errorf("%s: %w", ident, ErrNotFound)
		}
		return model.KindUnknown, nil, fmt.Errorf("cannot parse payload for %s: %w", ident, err)
	}
	return kind, attrs, nil
}

func (s *HTTPSource) String() string {
	return s.url.String()
}
