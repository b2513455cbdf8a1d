package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/gostonefire/chainmap"
	"github.com/gostonefire/chainmap/crt"
	"github.com/gostonefire/chainmap/logger"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	KEY_PARAM = "key"

	RTO = 5
	WTO = 10
	ITO = 120

	SHUTDOWN_TIMEOUT = 10 * time.Second
)

// SyncMap - A HashMap guarded by a single RWMutex, the hash map itself is not safe for concurrent use
type SyncMap struct {
	mux     sync.RWMutex
	hashMap *chainmap.HashMap[int64, string]
}

// NewSyncMap - Returns a SyncMap wrapping hashMap, which must not be used directly afterwards
func NewSyncMap(hashMap *chainmap.HashMap[int64, string]) *SyncMap {
	return &SyncMap{hashMap: hashMap}
}

func (S *SyncMap) Get(key int64) (value string, err error) {
	S.mux.RLock()
	defer S.mux.RUnlock()
	return S.hashMap.Get(key)
}

func (S *SyncMap) Put(key int64, value string) error {
	S.mux.Lock()
	defer S.mux.Unlock()
	return S.hashMap.Put(key, value)
}

func (S *SyncMap) Remove(key int64) error {
	S.mux.Lock()
	defer S.mux.Unlock()
	return S.hashMap.Remove(key)
}

func (S *SyncMap) String() string {
	S.mux.RLock()
	defer S.mux.RUnlock()
	return S.hashMap.String()
}

func (S *SyncMap) Stat() *chainmap.HashMapStat {
	S.mux.RLock()
	defer S.mux.RUnlock()
	return S.hashMap.Stat(false)
}

// XCHMServer - HTTP handlers exposing a SyncMap
type XCHMServer struct {
	syncMap *SyncMap
	logs    ilog.ILOG
}

func NewXCHMServer(syncMap *SyncMap, logs ilog.ILOG) *XCHMServer {
	return &XCHMServer{
		syncMap: syncMap,
		logs:    logs,
	}
}

// CreateMux - Returns the router with all routes registered
func (srv *XCHMServer) CreateMux() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/get/{"+KEY_PARAM+"}", srv.HandlerGet).Methods(http.MethodGet)
	r.HandleFunc("/set", srv.HandlerSet).Methods(http.MethodPost)
	r.HandleFunc("/del/{"+KEY_PARAM+"}", srv.HandlerDel).Methods(http.MethodGet, http.MethodDelete)
	r.HandleFunc("/list", srv.HandlerList).Methods(http.MethodGet)
	r.HandleFunc("/stat", srv.HandlerStat).Methods(http.MethodGet)
	return r
}

func (srv *XCHMServer) HandlerGet(w http.ResponseWriter, r *http.Request) {
	key, ok := srv.keyParam(w, r)
	if !ok {
		return
	}

	val, err := srv.syncMap.Get(key)
	if errors.Is(err, crt.NoRecordFound{}) {
		srv.logs.Debug("HandlerGet not found key=%d", key)
		w.WriteHeader(http.StatusGone) // 410
		return
	}
	if err != nil {
		srv.logs.Error("HandlerGet key=%d err='%v'", key, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(val))
}

func (srv *XCHMServer) HandlerSet(w http.ResponseWriter, r *http.Request) {
	// Every key is parsed before anything is stored so a bad key leaves the map untouched
	records, err := decodeRecords(r.Body)
	if err != nil {
		srv.logs.Warn("HandlerSet err='%v'", err)
		w.WriteHeader(http.StatusNotAcceptable) // 406
		return
	}

	for _, rec := range records {
		if err = srv.syncMap.Put(rec.key, rec.value); err != nil {
			srv.logs.Error("HandlerSet key=%d err='%v'", rec.key, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusCreated)
}

func (srv *XCHMServer) HandlerDel(w http.ResponseWriter, r *http.Request) {
	key, ok := srv.keyParam(w, r)
	if !ok {
		return
	}

	if err := srv.syncMap.Remove(key); err != nil {
		srv.logs.Error("HandlerDel key=%d err='%v'", key, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	srv.logs.Debug("HandlerDel key=%d", key)
	w.WriteHeader(http.StatusOK)
}

func (srv *XCHMServer) HandlerList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(srv.syncMap.String() + "\n"))
}

func (srv *XCHMServer) HandlerStat(w http.ResponseWriter, r *http.Request) {
	response, err := json.Marshal(srv.syncMap.Stat())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(response)
}

// record - One key/value pair from a /set body
type record struct {
	key   int64
	value string
}

// decodeRecords - Reads a JSON object of integer keys and string values, keeping the order the keys
// appear in the document
func decodeRecords(body io.Reader) (records []record, err error) {
	dec := json.NewDecoder(body)
	tok, err := dec.Token()
	if err != nil {
		return
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		err = fmt.Errorf("expected a JSON object, got %v", tok)
		return
	}

	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return
		}
		raw, _ := tok.(string)
		key, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			err = fmt.Errorf("bad key '%s'", raw)
			return
		}

		var value string
		if err = dec.Decode(&value); err != nil {
			err = fmt.Errorf("bad value for key %d: %w", key, err)
			return
		}
		records = append(records, record{key: key, value: value})
	}

	// Closing brace
	_, err = dec.Token()

	return
}

// keyParam - Parses the key route variable, answers 406 and returns false if it is not an integer
func (srv *XCHMServer) keyParam(w http.ResponseWriter, r *http.Request) (key int64, ok bool) {
	raw := mux.Vars(r)[KEY_PARAM]
	key, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		srv.logs.Warn("bad key='%s'", raw)
		w.WriteHeader(http.StatusNotAcceptable) // 406
		return
	}
	return key, true
}

// HttpServer - Serves an XCHMServer until Stop is called
type HttpServer struct {
	httpServer *http.Server
	logs       ilog.ILOG
}

// NewHttpServer - Returns an HttpServer listening on host:port once started
func NewHttpServer(host, port string, chmServer *XCHMServer, logs ilog.ILOG) *HttpServer {
	return &HttpServer{
		httpServer: &http.Server{
			ReadTimeout:  RTO * time.Second,
			WriteTimeout: WTO * time.Second,
			IdleTimeout:  ITO * time.Second,
			Addr:         net.JoinHostPort(host, port),
			Handler:      chmServer.CreateMux(),
		},
		logs: logs,
	}
}

// Start - Listens and serves until Stop, returns nil after a clean shutdown
func (server *HttpServer) Start() error {
	server.logs.Info("HTTP @ '%s'", server.httpServer.Addr)
	if err := server.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	server.logs.Info("HttpServer: closed")
	return nil
}

// Stop - Shuts the server down, waiting at most SHUTDOWN_TIMEOUT for open requests
func (server *HttpServer) Stop() error {
	server.logs.Info("HttpServer: stopping")
	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer shutdownRelease()
	return server.httpServer.Shutdown(shutdownCtx)
}
