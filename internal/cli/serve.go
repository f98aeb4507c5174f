package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ipsum/internal/server"
	"ipsum/internal/usecase"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the JSON HTTP API.

POST /api/generate accepts a query, a title+body, a title+word list or
a title+frequency model, plus generation options, and returns the
generated text.

Examples:
  ipsum serve
  ipsum serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; flags and config still win
	_ = godotenv.Load()

	cfg := GetConfig()

	source, closeSource, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	synth := usecase.NewSynthesizer(source, newRand, limits(cfg))
	srv := server.New(synth, cfg.Generate.Options())

	addr := cfg.Server.Addr
	if env := os.Getenv("IPSUM_ADDR"); env != "" {
		addr = env
	}
	if serveAddr != "" {
		addr = serveAddr
	}

	fmt.Printf("Listening on %s\n", addr)
	return http.ListenAndServe(addr, srv.Routes())
}
