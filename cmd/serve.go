package cmd

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"triage/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

// serveCmd runs the classification HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the classification HTTP API",
	Long: `Starts an HTTP server exposing ticket classification via a RESTful API,
for use from helpdesk tooling or UIs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		// Flags win over config.
		addr := appInstance.Config.Server.Addr
		port := appInstance.Config.Server.Port
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		router := gin.Default()

		apiHandler := apihandlers.NewAPIHandler(appInstance)
		v1 := router.Group("/api/v1")
		{
			v1.POST("/classify", apiHandler.ClassifyHandler)
			v1.POST("/classify/batch", apiHandler.ClassifyBatchHandler)
			v1.GET("/categories", apiHandler.CategoriesHandler)
		}

		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("Starting triage API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")
}
