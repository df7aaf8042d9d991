package biocyc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/biocyc/go-biocyc/apierror"
	"github.com/biocyc/go-biocyc/biocyc"
	"github.com/biocyc/go-biocyc/model"
	"github.com/stretchr/testify/require"
)

func TestHTTPSourceFetch(t *testing.T) {
	fs := lactateService(t)
	src, err := biocyc.NewHTTPSource(fs.srv.URL, nil)
	require.NoError(t, err)
	require.Contains(t, src.String(), "getxml")

	kind, attrs, err := src.Fetch(context.Background(),
		model.NewIdentity("META", "L-LACTATE"), model.DetailFull)
	require.NoError(t, err)
	require.Equal(t, model.KindCompound, kind)

	name, ok := attrs.Scalar(model.AttrCommonName)
	require.True(t, ok)
	require.Equal(t, "(S)-lactate", name)

	rxns, ok := attrs.Refs(model.AttrReactions)
	require.True(t, ok)
	require.Len(t, rxns, 3)
}

func TestHTTPSourceNotFound(t *testing.T) {
	fs := lactateService(t)
	src, err := biocyc.NewHTTPSource(fs.srv.URL, nil)
	require.NoError(t, err)

	_, _, err = src.Fetch(context.Background(),
		model.NewIdentity("META", "NO-SUCH-FRAME"), model.DetailFull)
	require.Error(t, err)
	require.True(t, biocyc.IsNotFound(err))
}

func TestHTTPSourceEmptyPayloadIsNotFound(t *testing.T) {
	// Some unknown identifiers come back with an OK status and a payload
	// holding no record.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<ptools-xml><metadata><num-results>0</num-results></metadata></ptools-xml>`))
	}))
	defer srv.Close()

	src, err := biocyc.NewHTTPSource(srv.URL, nil)
	require.NoError(t, err)

	_, _, err = src.Fetch(context.Background(),
		model.NewIdentity("META", "GHOST"), model.DetailFull)
	require.Error(t, err)
	require.True(t, biocyc.IsNotFound(err))
}

func TestHTTPSourceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, err := biocyc.NewHTTPSource(srv.URL, nil)
	require.NoError(t, err)

	_, _, err = src.Fetch(context.Background(),
		model.NewIdentity("META", "L-LACTATE"), model.DetailFull)
	require.Error(t, err)
	require.True(t, apierror.IsStatus(err, http.StatusServiceUnavailable))
	require.False(t, biocyc.IsNotFound(err))
}

func TestHTTPSourceHeaders(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(renderEntity("META", "L-LACTATE", fakeEntity{kind: "Compound", name: "x"}, "full")))
	}))
	defer srv.Close()

	src, err := biocyc.NewHTTPSource(srv.URL, nil)
	require.NoError(t, err)
	src.AddHeader("Authorization", "Basic dXNlcjpwdw==")

	_, _, err = src.Fetch(context.Background(),
		model.NewIdentity("META", "L-LACTATE"), model.DetailFull)
	require.NoError(t, err)
	require.Equal(t, "Basic dXNlcjpwdw==", gotAuth)
}

func TestHTTPSourceBaseURLWithPath(t *testing.T) {
	// A base URL carrying a path prefix, such as a private mirror, keeps
	// that prefix in front of the endpoint path.
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(renderEntity("META", "L-LACTATE", fakeEntity{kind: "Compound", name: "x"}, "full")))
	}))
	defer srv.Close()

	src, err := biocyc.NewHTTPSource(srv.URL+"/mirror", nil)
	require.NoError(t, err)

	_, _, err = src.Fetch(context.Background(),
		model.NewIdentity("META", "L-LACTATE"), model.DetailFull)
	require.NoError(t, err)
	require.Equal(t, "/mirror/getxml", gotPath)
}

func TestHTTPSourceBadURL(t *testing.T) {
	_, err := biocyc.NewHTTPSource("ftp://websvc.biocyc.org", nil)
	require.Error(t, err)
}
