//go:build unit

package server

import (
	"bytes"
	"encoding/json"
	"github.com/gostonefire/chainmap"
	"github.com/gostonefire/chainmap/logger"
	"github.com/stretchr/testify/assert"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*httptest.Server, *SyncMap) {
	syncMap := NewSyncMap(chainmap.New[int64, string]())
	chmServer := NewXCHMServer(syncMap, ilog.NewWriterLogger(ilog.NONE, io.Discard))
	ts := httptest.NewServer(chmServer.CreateMux())
	t.Cleanup(ts.Close)
	return ts, syncMap
}

func do(t *testing.T, method, url, body string) (int, string) {
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	assert.NoError(t, err, "creates request")
	resp, err := http.DefaultClient.Do(req)
	assert.NoError(t, err, "does request")
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	assert.NoError(t, err, "reads body")
	return resp.StatusCode, string(b)
}

func TestXCHMServer_SetGet(t *testing.T) {
	t.Run("set then get returns value", func(t *testing.T) {
		// Prepare
		ts, _ := newTestServer(t)

		// Execute
		status, _ := do(t, http.MethodPost, ts.URL+"/set", `{"12836":"a","16840":"b"}`)
		getStatus, body := do(t, http.MethodGet, ts.URL+"/get/16840", "")

		// Check
		assert.Equal(t, http.StatusCreated, status, "created")
		assert.Equal(t, http.StatusOK, getStatus, "found")
		assert.Equal(t, "b", body, "value")
	})

	t.Run("multi key set keeps the order of the document", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			// Prepare
			ts, _ := newTestServer(t)

			// Execute
			status, _ := do(t, http.MethodPost, ts.URL+"/set", `{"1":"a","2":"b","3":"c","4":"d","5":"e","6":"f"}`)
			listStatus, body := do(t, http.MethodGet, ts.URL+"/list", "")

			// Check
			assert.Equal(t, http.StatusCreated, status, "created")
			assert.Equal(t, http.StatusOK, listStatus, "listed")
			assert.Equal(t, "1 -> 2 -> 3 -> 4 -> 5 -> 6 -> null\n", body, "insertion order")
		}
	})

	t.Run("repeated key in one body keeps its first position", func(t *testing.T) {
		// Prepare
		ts, syncMap := newTestServer(t)

		// Execute
		status, _ := do(t, http.MethodPost, ts.URL+"/set", `{"9":"a","-3":"b","9":"c"}`)

		// Check
		assert.Equal(t, http.StatusCreated, status, "created")
		assert.Equal(t, "9 -> -3 -> null", syncMap.String(), "order")
		v, err := syncMap.Get(9)
		assert.NoError(t, err, "found")
		assert.Equal(t, "c", v, "last value wins")
	})

	t.Run("absent key is gone", func(t *testing.T) {
		// Prepare
		ts, _ := newTestServer(t)

		// Execute
		status, _ := do(t, http.MethodGet, ts.URL+"/get/1", "")

		// Check
		assert.Equal(t, http.StatusGone, status, "gone")
	})

	t.Run("non integer key is not acceptable", func(t *testing.T) {
		// Prepare
		ts, syncMap := newTestServer(t)

		// Execute
		getStatus, _ := do(t, http.MethodGet, ts.URL+"/get/abc", "")
		setStatus, _ := do(t, http.MethodPost, ts.URL+"/set", `{"1":"a","x":"b"}`)
		badJSON, _ := do(t, http.MethodPost, ts.URL+"/set", `not json`)
		badValue, _ := do(t, http.MethodPost, ts.URL+"/set", `{"1":"a","2":3}`)
		notObject, _ := do(t, http.MethodPost, ts.URL+"/set", `["1","a"]`)

		// Check
		assert.Equal(t, http.StatusNotAcceptable, getStatus, "bad get key")
		assert.Equal(t, http.StatusNotAcceptable, setStatus, "bad set key")
		assert.Equal(t, http.StatusNotAcceptable, badJSON, "bad body")
		assert.Equal(t, http.StatusNotAcceptable, badValue, "non string value")
		assert.Equal(t, http.StatusNotAcceptable, notObject, "not an object")
		assert.Equal(t, "null", syncMap.String(), "nothing stored")
	})

	t.Run("wrong method is not allowed", func(t *testing.T) {
		// Prepare
		ts, _ := newTestServer(t)

		// Execute
		status, _ := do(t, http.MethodGet, ts.URL+"/set", "")

		// Check
		assert.Equal(t, http.StatusMethodNotAllowed, status, "method not allowed")
	})
}

func TestXCHMServer_DelList(t *testing.T) {
	t.Run("delete removes and list shows insertion order", func(t *testing.T) {
		// Prepare
		ts, syncMap := newTestServer(t)
		for _, k := range []int64{3, 1, 2} {
			assert.NoError(t, syncMap.Put(k, "v"), "put")
		}

		// Execute
		delStatus, _ := do(t, http.MethodDelete, ts.URL+"/del/1", "")
		delAgain, _ := do(t, http.MethodGet, ts.URL+"/del/1", "")
		listStatus, body := do(t, http.MethodGet, ts.URL+"/list", "")

		// Check
		assert.Equal(t, http.StatusOK, delStatus, "deleted")
		assert.Equal(t, http.StatusOK, delAgain, "absent delete is fine")
		assert.Equal(t, http.StatusOK, listStatus, "listed")
		assert.Equal(t, "3 -> 2 -> null\n", body, "order")
	})
}

func TestXCHMServer_Stat(t *testing.T) {
	t.Run("returns statistics as json", func(t *testing.T) {
		// Prepare
		ts, syncMap := newTestServer(t)
		for _, k := range []int64{1, 2, 3} {
			assert.NoError(t, syncMap.Put(k, "v"), "put")
		}

		// Execute
		status, body := do(t, http.MethodGet, ts.URL+"/stat", "")

		// Check
		assert.Equal(t, http.StatusOK, status, "ok")
		var stat chainmap.HashMapStat
		assert.NoError(t, json.NewDecoder(bytes.NewBufferString(body)).Decode(&stat), "decodes")
		assert.Equal(t, int64(3), stat.Records, "records")
		assert.Equal(t, int64(8), stat.NumberOfBuckets, "buckets")
		assert.Nil(t, stat.BucketDistribution, "no distribution")
	})
}
