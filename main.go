package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tire-locator/config"
	"tire-locator/di"
	"tire-locator/locator"
	"tire-locator/models"
	"tire-locator/util"
)

var (
	httpAddr  string
	redisAddr string
	seedFile  string
	seedFirst bool
	debug     bool

	plotOut  string
	bbox     []float64
	activeID int

	requestID int
)

var rootCmd = &cobra.Command{
	Use:   "tire-locator",
	Short: "Tire-service locator backend and tools",
	Long:  `Serves the placemark API and map sessions for the tire-service locator, and ships tools to seed and inspect placemark data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(debug)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and map session server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load placemarks from a JSON file into Redis",
	RunE:  runSeed,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the placemarks visible in a viewport to an HTML chart",
	Long:  `Fetch placemarks from the API, filter them by --bbox=swLat,swLon,neLat,neLon and write an ECharts map.`,
	RunE:  runPlot,
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Choose a placemark and submit a service request for it",
	RunE:  runRequest,
}

var logger log.Logger = log.NewNopLogger()

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "verbose", "v", false, "Debug logging")

	serveCmd.Flags().StringVar(&httpAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	serveCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides REDIS_ADDR)")
	serveCmd.Flags().BoolVar(&seedFirst, "seed", false, "Seed placemarks before serving")
	serveCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (overrides SEED_FILE)")

	seedCmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address (overrides REDIS_ADDR)")
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (overrides SEED_FILE)")

	plotCmd.Flags().StringVarP(&plotOut, "out", "o", config.VIEWPORT_PLOT_FILE, "Output HTML file")
	plotCmd.Flags().Float64SliceVar(&bbox, "bbox", []float64{59.80, 30.10, 60.05, 30.55}, "Viewport as swLat,swLon,neLat,neLon")
	plotCmd.Flags().IntVar(&activeID, "active", 0, "Placemark to highlight")

	requestCmd.Flags().IntVar(&requestID, "id", 0, "Placemark id")
	_ = requestCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(serveCmd, seedCmd, plotCmd, requestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) log.Logger {
	l := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	l = log.With(l, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(l, level.AllowDebug())
	}
	return level.NewFilter(l, level.AllowInfo())
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	if redisAddr != "" {
		cfg.RedisAddr = redisAddr
	}
	if seedFile != "" {
		cfg.SeedFile = seedFile
	}
	return cfg
}

func runServe(cmd *cobra.Command, args []string) error {
	container, err := di.NewContainer(loadConfig(), logger)
	if err != nil {
		return err
	}
	defer container.Close()

	// The in-memory store starts empty, so it always needs seeding.
	if seedFirst || container.Config.RedisAddr == "" {
		if _, err := container.PlacemarkService.SeedFromFile(container.Config.SeedFile); err != nil {
			return err
		}
	}
	if err := container.PlacemarkIndexRefresherService.RefreshIndex(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return container.LocatorHttpServer.Start(ctx)
	})
	g.Go(func() error {
		minutes := container.Config.IndexRefreshMinutes
		if minutes <= 0 {
			minutes = config.DEFAULT_INDEX_REFRESH_MINUTES
		}
		interval := time.Duration(minutes) * time.Minute
		return container.PlacemarkIndexRefresherService.RunPeriodicJob(ctx, interval)
	})
	return g.Wait()
}

func runSeed(cmd *cobra.Command, args []string) error {
	container, err := di.NewContainer(loadConfig(), logger)
	if err != nil {
		return err
	}
	defer container.Close()

	stored, err := container.PlacemarkService.SeedFromFile(container.Config.SeedFile)
	if err != nil {
		return err
	}
	all, err := container.PlacemarkService.ListPlacemarks()
	if err != nil {
		return err
	}
	fmt.Printf("Stored %d placemarks from %s\n", stored, container.Config.SeedFile)
	util.PrintLocationsPartially(all)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	if len(bbox) != 4 {
		return fmt.Errorf("--bbox needs 4 values, got %d", len(bbox))
	}
	bounds := models.NewViewportBounds(bbox[0], bbox[1], bbox[2], bbox[3])

	container, err := di.NewContainer(loadConfig(), logger)
	if err != nil {
		return err
	}
	defer container.Close()

	store := locator.NewPlaceStore(container.PlacemarksAPI, container.Locale, logger)
	all, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}
	visible := locator.ComputeVisible(all, bounds)
	util.PrintLocationsPartially(visible)

	f, err := os.Create(plotOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := util.PlotViewport(f, bounds, visible, activeID); err != nil {
		return err
	}
	fmt.Printf("%d of %d placemarks visible, chart written to %s\n", len(visible), len(all), plotOut)
	return nil
}

// runRequest walks the same steps as a map visitor: select, open the
// detail popup, confirm and submit.
func runRequest(cmd *cobra.Command, args []string) error {
	container, err := di.NewContainer(loadConfig(), logger)
	if err != nil {
		return err
	}
	defer container.Close()
	cfg := container.Config

	store := locator.NewPlaceStore(container.PlacemarksAPI, container.Locale, logger)
	if _, err := store.Load(cmd.Context()); err != nil {
		return err
	}
	selection := locator.NewSelectionController(store, locator.NopMapWidget{}, cfg.PanDuration, cfg.RequestDescription, logger)
	workflow := locator.NewRequestWorkflow(selection, container.PlacemarksAPI,
		models.ClientInfo{Name: cfg.ClientName, Phone: cfg.ClientPhone}, logger)

	if err := selection.SelectActive(requestID); err != nil {
		return fmt.Errorf("placemark %d is not listed: %w", requestID, err)
	}
	if err := selection.OpenDetail(requestID); err != nil {
		return err
	}
	if !selection.ConfirmChoice() {
		return fmt.Errorf("placemark %d is missing details and cannot be chosen", requestID)
	}
	chosen := selection.State().Chosen
	if err := workflow.Submit(cmd.Context()); err != nil {
		return err
	}
	fmt.Printf("Request sent for %s (%s): %s\n", chosen.Name, chosen.Address, chosen.Description)
	return nil
}
