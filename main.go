package main

import (
	"log"
	"os"

	"audiostego-backend/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	router := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"http://localhost:3000"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	config.ExposeHeaders = []string{
		"X-Stego-PSNR", "X-Stego-Method", "X-Stego-Capacity", "X-Stego-Utilization",
		"X-Stego-NLSB", "X-Stego-Encrypted", "X-Stego-Randomized", "Content-Disposition",
	}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	stegoHandler := handlers.NewStegoHandler()

	api := router.Group("/api/v1")
	{
		api.GET("/health", stegoHandler.HealthCheck)

		stegoGroup := api.Group("/stego")
		{
			stegoGroup.POST("/insert", stegoHandler.InsertMessage)
			stegoGroup.POST("/extract", stegoHandler.ExtractMessage)
			stegoGroup.POST("/capacity", stegoHandler.CheckCapacity)
			stegoGroup.POST("/feasibility", stegoHandler.CheckFeasibility)
			stegoGroup.POST("/analyze", stegoHandler.AnalyzeCover)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Printf("API endpoints:")
	log.Printf("  POST /api/v1/stego/insert      - Hide a secret file in an MP3/WAV cover")
	log.Printf("  POST /api/v1/stego/extract     - Recover a secret file from a stego cover")
	log.Printf("  POST /api/v1/stego/capacity    - Capacity in bits for a cover")
	log.Printf("  POST /api/v1/stego/feasibility - Capacity vs. requirement verdict")
	log.Printf("  POST /api/v1/stego/analyze     - Frame/sample statistics and ID3 tags")
	log.Printf("  GET  /api/v1/health            - Health check")
	log.Printf("")
	log.Printf("Features:")
	log.Printf("  • MP3 private-bit and padding-byte carriers (bitstream untouched otherwise)")
	log.Printf("  • PCM sample carrier with lossless WAV output")
	log.Printf("  • Extended Vigenère encryption and key-seeded slot ordering")
	log.Printf("  • Parameter auto-detection on extraction")
	log.Printf("  • PSNR quality assessment for PCM embeds (X-Stego-PSNR header)")

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
