package signor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_URLBuilding(t *testing.T) {
	c := NewClient("hi", "")

	t.Run("Pathway relations URL", func(t *testing.T) {
		assert.Equal(t, "hi/getPathwayData.php?pathway=haha&relations=only",
			c.PathwayDataURL("haha", true))
	})

	t.Run("Pathway description URL", func(t *testing.T) {
		assert.Equal(t, "hi/getPathwayData.php?pathway=haha",
			c.PathwayDataURL("haha", false))
	})

	t.Run("Pathway list URL", func(t *testing.T) {
		assert.Equal(t, "hi/getPathwayData.php?list", c.PathwayListURL())
	})

	t.Run("Full species URL", func(t *testing.T) {
		assert.Equal(t, "hi/getData.php?organism=9606", c.FullSpeciesURL("9606"))
	})
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "signorloader/1.0.0")
	assert.Equal(t, DefaultURL, c.baseURL)

	c = NewClient("https://signor.uniroma2.it/", "")
	assert.Equal(t, "https://signor.uniroma2.it", c.baseURL)
}

func TestClient_GetPathwayList(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		assert.Equal(t, "/getPathwayData.php", r.URL.Path)
		assert.True(t, r.URL.Query().Has("list"))
		w.Write([]byte("SIGNOR-MM\tMALIGNANT MELANOMA\n"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "signorloader/1.0.0")
	data, err := c.GetPathwayList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SIGNOR-MM\tMALIGNANT MELANOMA\n", string(data))
	assert.Equal(t, "signorloader/1.0.0", gotAgent)
}

func TestClient_GetProteinFamilies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/download_complexes.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Download protein family data", r.PostFormValue("submit"))
		w.Write([]byte("SIGNOR-PF1;JAK;\"P23458\"\n"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	data, err := c.GetProteinFamilies(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "SIGNOR-PF1")
}

func TestClient_GetComplexes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Download complex data", r.PostFormValue("submit"))
		w.Write([]byte("SIGNOR-C1;mTORC2;\"P42345, Q6R327\"\n"))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.GetComplexes(context.Background())
	require.NoError(t, err)
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.GetPathwayList(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(server.URL, "")
	_, err := c.GetPathwayList(ctx)
	assert.Error(t, err)
}
