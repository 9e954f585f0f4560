package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"adsgen/internal/adapters/captions"
	"adsgen/internal/adapters/downloader"
	"adsgen/internal/adapters/localstorage"
	"adsgen/internal/config"
	"adsgen/internal/core/domain"
	"adsgen/internal/logging"
	"adsgen/internal/service"
)

// Exit codes, one per error category, for scripting.
const (
	exitOK               = 0
	exitUsage            = 1
	exitValidation       = 2
	exitAuth             = 3
	exitRateLimit        = 4
	exitAPI              = 5
	exitNetwork          = 6
	exitGenerationFailed = 7
	exitDownload         = 8
)

const (
	defaultProductFile = "product.json"
	defaultOutputDir   = "./generated_videos"
	envFile            = ".env"

	// Default media used by the validate command, which checks a
	// script/creator pair without a full product file.
	placeholderMediaURL = "https://images.unsplash.com/photo-1611224923853-80b023f02d71?w=800&h=600&fit=crop"
)

func main() {
	// Load .env if present, environment variables might be set manually
	_ = godotenv.Load()

	logger := logging.New()

	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:], logger)
	case "creators":
		err = runCreators(os.Args[2:], logger)
	case "list":
		err = runList(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "setup":
		err = runSetup(os.Args[2:], logger)
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(exitUsage)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Println("Usage: ads-cli <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  generate   Generate an AI advertisement video from product.json")
	fmt.Println("  creators   List available AI creators")
	fmt.Println("  list       List generated videos in the output directory")
	fmt.Println("  validate   Validate a script and creator pair without submitting")
	fmt.Println("  setup      Interactive API key setup")
	fmt.Println()
	fmt.Println("Example:")
	fmt.Println("  ads-cli generate -product-file product.json -output-dir ./generated_videos")
}

// exitCode maps the error taxonomy onto distinct exit codes.
func exitCode(err error) int {
	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthError
		rateErr       *domain.RateLimitError
		apiErr        *domain.APIError
		netErr        *domain.NetworkError
		genErr        *domain.GenerationFailedError
		dlErr         *domain.DownloadError
	)
	switch {
	case errors.As(err, &validationErr):
		return exitValidation
	case errors.As(err, &authErr):
		return exitAuth
	case errors.As(err, &rateErr):
		return exitRateLimit
	case errors.As(err, &genErr):
		return exitGenerationFailed
	case errors.As(err, &dlErr):
		return exitDownload
	case errors.As(err, &netErr):
		return exitNetwork
	case errors.As(err, &apiErr):
		return exitAPI
	}
	return exitUsage
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn().Msg("received interrupt signal, cancelling")
		cancel()
	}()

	return ctx, cancel
}

func runGenerate(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	productFile := fs.String("product-file", defaultProductFile, "Path to the product.json file")
	outputDir := fs.String("output-dir", defaultOutputDir, "Output directory for videos")
	apiKey := fs.String("api-key", "", "Captions API key (defaults to CAPTIONS_API_KEY)")
	filename := fs.String("filename", "", "Custom filename for the video")
	pollInterval := fs.Duration("poll-interval", service.DefaultPollInterval, "Wait between job status checks")
	maxWait := fs.Duration("max-wait", 0, "Maximum time to wait for the job (0 = no limit)")
	fs.Parse(args)

	cfg, err := config.LoadProduct(*productFile)
	if err != nil {
		return err
	}

	key := *apiKey
	if key == "" {
		key = config.APIKeyFromEnv()
	}
	client, err := captions.NewClient(key, logger)
	if err != nil {
		return err
	}

	gen := service.NewGenerator(client, downloader.NewHTTPDownloader(), localstorage.New(*outputDir), logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	result, err := gen.Generate(ctx, *cfg, service.Options{
		Filename:     *filename,
		PollInterval: *pollInterval,
		MaxWait:      *maxWait,
	})
	if err != nil {
		return err
	}

	fmt.Println("\n=== Generation Summary ===")
	fmt.Printf("Operation ID: %s\n", result.OperationID)
	fmt.Printf("Creator:      %s\n", result.Config.CreatorName)
	fmt.Printf("Resolution:   %s\n", strings.ToUpper(string(result.Config.Resolution)))
	fmt.Printf("Video:        %s\n", result.VideoPath)
	fmt.Printf("File Size:    %s\n", domain.FormatFileSize(result.FileSize))
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format(time.RFC3339))
	return nil
}

func runCreators(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("creators", flag.ExitOnError)
	apiKey := fs.String("api-key", "", "Captions API key (defaults to CAPTIONS_API_KEY)")
	fs.Parse(args)

	key := *apiKey
	if key == "" {
		key = config.APIKeyFromEnv()
	}
	client, err := captions.NewClient(key, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	creators, err := client.ListCreators(ctx)
	if err != nil {
		return err
	}

	if len(creators) == 0 {
		fmt.Println("No creators available, please check your API key and try again.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATOR\tTHUMBNAIL")
	for _, c := range creators {
		thumb := c.Thumbnail
		if thumb == "" {
			thumb = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", c.Name, thumb)
	}
	w.Flush()

	fmt.Printf("\nTotal available creators: %d\n", len(creators))
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	outputDir := fs.String("output-dir", defaultOutputDir, "Directory to list videos from")
	fs.Parse(args)

	store := localstorage.New(*outputDir)
	videos, err := store.ListVideos()
	if err != nil {
		return err
	}

	if len(videos) == 0 {
		fmt.Printf("No video files found in %s\n", *outputDir)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILENAME\tSIZE\tMODIFIED")
	for _, v := range videos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, domain.FormatFileSize(v.Size), v.ModifiedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	script := fs.String("script", "", "Script to validate")
	creator := fs.String("creator", "", "Creator name to validate")
	fs.Parse(args)

	cfg := domain.ProductConfig{
		Script:      *script,
		CreatorName: *creator,
		MediaURLs:   []string{placeholderMediaURL},
		Resolution:  domain.ResolutionFHD,
	}
	if err := cfg.Validate(); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Println("Validation failed:")
			for _, v := range validationErr.Violations {
				fmt.Printf("  - %s\n", v)
			}
		}
		return err
	}

	fmt.Println("Script and creator are valid!")
	fmt.Printf("Script length: %d characters\n", len(*script))
	fmt.Printf("Creator:       %s\n", *creator)
	return nil
}

func runSetup(args []string, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	fs.Parse(args)

	key := config.APIKeyFromEnv()
	if _, err := os.Stat(envFile); err == nil {
		fmt.Printf("%s already exists\n", envFile)
	} else {
		fmt.Print("Enter your Captions API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read API key: %w", err)
		}
		key = strings.TrimSpace(line)
		if key == "" {
			return &domain.AuthError{Message: "no API key entered"}
		}
		if err := config.SaveAPIKey(envFile, key); err != nil {
			return err
		}
		fmt.Printf("Configuration saved to %s\n", envFile)
	}

	fmt.Println("Testing API connection...")
	client, err := captions.NewClient(key, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	creators, err := client.ListCreators(ctx)
	if err != nil {
		return fmt.Errorf("API connection failed: %w", err)
	}
	fmt.Printf("API connection successful! Available creators: %d\n", len(creators))
	return nil
}
