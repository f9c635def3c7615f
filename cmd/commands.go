package main

import (
	"fmt"
	"time"

	"irrigation_dashboard/internal/backend"
	"irrigation_dashboard/internal/config"
	"irrigation_dashboard/internal/emulator"
	"irrigation_dashboard/internal/logger"
	"irrigation_dashboard/internal/models"
	"irrigation_dashboard/internal/service"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const liveZoneID = 1

var (
	liveCmd = &cobra.Command{
		Use:   "live",
		Short: "Dashboard for one zone polled from the ESP32 backend",
		RunE:  runLive,
	}
	simCmd = &cobra.Command{
		Use:   "sim",
		Short: "Dashboard for simulated zones driven by slider input",
		RunE:  runSim,
	}
	emulatorCmd = &cobra.Command{
		Use:   "emulator",
		Short: "Emulate the ESP32 backend API (/api/status, /api/water/start)",
		RunE:  runEmulator,
	}
)

func init() {
	liveCmd.Flags().String("backend", "", "ESP32 backend base URL")
	_ = viper.BindPFlag("backend.url", liveCmd.Flags().Lookup("backend"))

	simCmd.Flags().Int("zones", 0, "Number of simulated zones")
	_ = viper.BindPFlag("zones.count", simCmd.Flags().Lookup("zones"))
}

func runLive(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(config.ModeLive)
	if err != nil {
		return err
	}
	policy, err := service.ParseOverridePolicy(cfg.Zones.OverridePolicy)
	if err != nil {
		return err
	}

	zones := service.NewZoneTable()
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout,
		backend.WithBreaker(cfg.Backend.Breaker.Failures, cfg.Backend.Breaker.OpenFor))
	if err := zones.Add(service.NewZone(liveZoneID, models.SourceLive, policy), service.NewRemoteSource(client, cfg.Sensor.RawMax)); err != nil {
		return err
	}

	log.Infow("starting live dashboard", "backend", cfg.Backend.URL, "interval", cfg.Poll.Interval, "port", cfg.Port)
	return runDashboard(cmd.Context(), cfg, zones, log, dashboardHooks{
		startMessage: fmt.Sprintf("Dashboard started. Zone %d is live hardware data.", liveZoneID),
		poll:         true,
	})
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(config.ModeSimulated)
	if err != nil {
		return err
	}
	policy, err := service.ParseOverridePolicy(cfg.Zones.OverridePolicy)
	if err != nil {
		return err
	}

	zones := service.NewZoneTable()
	for id := 1; id <= cfg.Zones.Count; id++ {
		if err := zones.Add(service.NewZone(id, models.SourceSimulated, policy), service.SimulatedSource{}); err != nil {
			return err
		}
	}

	log.Infow("starting simulated dashboard", "zones", cfg.Zones.Count, "initial_percent", cfg.Zones.InitialPercent, "port", cfg.Port)
	return runDashboard(cmd.Context(), cfg, zones, log, dashboardHooks{
		startMessage: fmt.Sprintf("Dashboard started with %d simulated zones.", cfg.Zones.Count),
		seedPercent:  &cfg.Zones.InitialPercent,
		ingest:       cfg.MQTT.Broker != "",
	})
}

func runEmulator(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig(config.ModeEmulator)
	if err != nil {
		return err
	}
	device := emulator.NewDevice(emulator.InitialRaw, cfg.Emulator.WateringDuration, time.Now())
	handler := emulator.NewHandler(device, log.Named("emulator"))

	log.Infow("starting ESP32 emulator", "port", cfg.Emulator.Port, "watering_duration", cfg.Emulator.WateringDuration)
	return runEmulatorServer(cmd.Context(), cfg, device, handler, log)
}

func loadConfig(mode config.Mode) (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(viper.GetViper(), mode)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.Get(cfg.Log.Level, cfg.Log.Format), nil
}
