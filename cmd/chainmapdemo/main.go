package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	prof "github.com/go-while/go-cpu-mem-profiler"
	"github.com/gostonefire/chainmap"
	"github.com/gostonefire/chainmap/hashfunc"
	"github.com/gostonefire/chainmap/internal/conf"
	"github.com/gostonefire/chainmap/internal/config"
	"github.com/gostonefire/chainmap/internal/hash"
	"github.com/gostonefire/chainmap/internal/server"
	"github.com/gostonefire/chainmap/logger"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var (
	flag_configfile string
	flag_logfile    string
	flag_serve      bool
)

func main() {
	flag.StringVar(&flag_configfile, "config", "", "path to config.toml")
	flag.StringVar(&flag_logfile, "logfile", "", "path to log file, overrides config")
	flag.BoolVar(&flag_serve, "serve", false, "keep serving the table over HTTP after the demo")
	flag.Parse()

	cfg, err := config.NewViperConf(flag_configfile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logfile := cfg.GetString(config.VK_LOG_FILE)
	if flag_logfile != "" {
		logfile = flag_logfile
	}
	logs := ilog.NewLogger(ilog.GetLOGLEVEL(cfg.GetString(config.VK_LOG_LEVEL)), logfile)
	if logs.IfDebug() {
		for _, line := range config.PrintConfigs(cfg) {
			logs.Debug("config %s", line)
		}
	}

	alg, err := bucketAlgorithm(cfg)
	if err != nil {
		logs.Fatal("bucket algorithm: %v", err)
	}

	hm, err := chainmap.NewHashMap[int64, string](chainmap.HashMapConf{
		InitialCapacity: cfg.GetInt64(config.VK_INITIAL_CAPACITY),
		BucketAlgorithm: alg,
		Logger:          logs,
	})
	if err != nil {
		logs.Fatal("create hash map: %v", err)
	}

	if err = runDemo(hm); err != nil {
		logs.Fatal("demo: %v", err)
	}

	if !flag_serve {
		return
	}

	if addr := cfg.GetString(config.VK_PPROF_ADDR); addr != "" {
		logs.Info("launching PprofWeb @ %s", addr)
		go prof.NewProf().PprofWeb(addr)
	}

	srv := server.NewHttpServer(
		cfg.GetString(config.VK_SERVER_HOST),
		cfg.GetString(config.VK_SERVER_PORT),
		server.NewXCHMServer(server.NewSyncMap(hm), logs),
		logs,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		if err := srv.Stop(); err != nil {
			logs.Error("HttpServer: shutdown error %v", err)
		}
	}()

	if err = srv.Start(); err != nil {
		logs.Fatal("HTTP server error: %v", err)
	}
	logs.Info("Quit: %s", os.Args[0])
}

// runDemo - Adds five students, prints, looks one up, removes one and prints again
func runDemo(hm *chainmap.HashMap[int64, string]) (err error) {
	students := []struct {
		id   int64
		name string
	}{
		{12836, "Xiao Ha"},
		{15937, "Xiao Luo"},
		{16750, "Xiao Suan"},
		{13276, "Xiao Fa"},
		{10583, "Xiao Ya"},
	}
	for _, s := range students {
		if err = hm.Put(s.id, s.name); err != nil {
			return
		}
	}
	fmt.Println("\nAfter adding, the hash map is\nKey -> Value")
	hm.Print()

	name, err := hm.Get(13276)
	if err != nil {
		return
	}
	fmt.Printf("\nLooking up student 13276 gives name %s\n", name)

	if err = hm.Remove(12836); err != nil {
		return
	}
	fmt.Println("\nAfter removing 12836, the hash map is\nKey -> Value")
	hm.Print()

	return
}

// bucketAlgorithm - Returns the configured bucket algorithm, nil for the built-in modulo
func bucketAlgorithm(cfg config.VConfig) (hashfunc.BucketAlgorithm, error) {
	capacity := cfg.GetInt64(config.VK_INITIAL_CAPACITY)
	if capacity == 0 {
		capacity = conf.InitialCapacity
	}

	switch strings.ToLower(cfg.GetString(config.VK_BUCKET_ALG)) {
	case config.BucketAlgXXHash:
		return hash.NewXXHashAlgorithm(capacity), nil
	case config.BucketAlgSipHash:
		var salt [16]byte
		if s := cfg.GetString(config.VK_SIPHASH_SALT); s != "" {
			copy(salt[:], s)
		} else if _, err := rand.Read(salt[:]); err != nil {
			return nil, fmt.Errorf("error while generating siphash salt: %w", err)
		}
		return hash.NewSipHashAlgorithm(capacity, salt), nil
	default:
		return nil, nil
	}
}
