package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gerisafe/config"
	"gerisafe/database"
	"gerisafe/logger"
	"gerisafe/web"
	"gerisafe/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	if !config.HasSecretEnv() {
		logger.Warning("GERISAFE_SECRET not set; using a generated key, sessions and pending registrations will not survive a restart")
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	var server *web.Server

	server = web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			err := server.Stop()
			if err != nil {
				return
			}
			return
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migration and catalog seeding done!")
}

func resetSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	err = settingService.ResetSettings()
	if err != nil {
		fmt.Println("reset setting failed:", err)
	} else {
		fmt.Println("reset setting success")
	}
}

func showSetting() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}
	port, err := settingService.GetPort()
	if err != nil {
		fmt.Println("get current port failed, error info:", err)
	}
	listen, err := settingService.GetListen()
	if err != nil {
		fmt.Println("get current listen address failed, error info:", err)
	}
	sessionMaxAge, err := settingService.GetSessionMaxAge()
	if err != nil {
		fmt.Println("get current session max age failed, error info:", err)
	}
	fmt.Println("current server settings as follows:")
	fmt.Println("listen:", listen)
	fmt.Println("port:", port)
	fmt.Println("session max age (minutes):", sessionMaxAge)
}

func updateSetting(port int, listen string, sessionMaxAge int) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	settingService := service.SettingService{}

	if port > 0 {
		err := settingService.SetPort(port)
		if err != nil {
			fmt.Println("set port failed:", err)
		} else {
			fmt.Printf("set port %v success\n", port)
		}
	}
	if listen != "" {
		err := settingService.SetListen(listen)
		if err != nil {
			fmt.Println("set listen address failed:", err)
		} else {
			fmt.Printf("set listen address %v success\n", listen)
		}
	}
	if sessionMaxAge > 0 {
		err := settingService.SetSessionMaxAge(sessionMaxAge)
		if err != nil {
			fmt.Println("set session max age failed:", err)
		} else {
			fmt.Printf("set session max age %v success\n", sessionMaxAge)
		}
	}
}

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("load .env failed:", err)
		}
	}

	var rootCmd = &cobra.Command{
		Use: "gerisafe",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database schema and seed the catalog",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Set settings",
	}

	var resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all settings",
		Run: func(cmd *cobra.Command, args []string) {
			resetSetting()
		},
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	var updateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update settings",
		Run: func(cmd *cobra.Command, args []string) {
			port, _ := cmd.Flags().GetInt("port")
			listen, _ := cmd.Flags().GetString("listen")
			sessionMaxAge, _ := cmd.Flags().GetInt("session-age")
			updateSetting(port, listen, sessionMaxAge)
		},
	}

	updateCmd.Flags().Int("port", 0, "set web server port")
	updateCmd.Flags().String("listen", "", "set web server listen address")
	updateCmd.Flags().Int("session-age", 0, "set session max age in minutes")

	settingCmd.AddCommand(resetCmd, showCmd, updateCmd)

	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
