package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"debate_hub/internal/api"
	"debate_hub/internal/mailer"
	"debate_hub/internal/models"
	"debate_hub/internal/repository"
	"debate_hub/internal/service"
	"debate_hub/internal/storage"
	"debate_hub/internal/utils"
	"debate_hub/pkg/config"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}, &models.Admin{}, &models.Topic{}, &models.Debate{}); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 沒有配置 Resend API key 時改用純記錄的通知器
	var notifier mailer.Notifier
	if cfg.Mail.ResendAPIKey != "" {
		notifier = mailer.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	} else {
		notifier = &mailer.LogMailer{}
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, notifier)

	// 補種預設管理員帳號
	if err := services.Admin.EnsureDefaultAdmin(cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}

	// 啟動內建的自動排程觸發器。
	// 排程核心本身無狀態，GET /api/cron 也能隨時觸發同一個入口
	if cfg.Automation.Interval > 0 {
		go runAutomationLoop(services.Automation, cfg.Automation.Interval)
	}

	// 設置 Gin 路由
	r := gin.Default()
	api.SetupRoutes(r, services)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func runAutomationLoop(automation *service.AutomationService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		summary := automation.Run()
		if summary.Revealed > 0 || summary.Completed > 0 || summary.Failed > 0 {
			log.Printf("automation run: revealed=%d completed=%d failed=%d",
				summary.Revealed, summary.Completed, summary.Failed)
		}
	}
}
