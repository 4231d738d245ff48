package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aidar/invento-api/internal/app"
	"github.com/aidar/invento-api/internal/config"
)

func main() {
	// Загружаем конфигурацию из .env и переменных окружения
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Не удалось загрузить конфигурацию: %v", err)
	}

	// Создаем экземпляр приложения
	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Не удалось создать приложение: %v", err)
	}

	// Инициализируем приложение (подключение к БД и Redis, настройка роутинга)
	ctx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	err = application.Initialize(ctx)
	cancelInit()
	if err != nil {
		log.Fatalf("Не удалось инициализировать приложение: %v", err)
	}

	// Настраиваем graceful shutdown для корректного завершения
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Запускаем HTTP сервер в отдельной горутине
	go func() {
		if err := application.Run(); err != nil {
			log.Printf("Ошибка сервера: %v", err)
		}
	}()

	for _, line := range startupSummary(cfg) {
		fmt.Println(line)
	}

	// Ожидаем сигнал прерывания (Ctrl+C или SIGTERM)
	<-sigChan
	fmt.Println("\nОстановка сервера...")

	// Создаем контекст с таймаутом для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	// Корректно останавливаем приложение
	if err := application.Shutdown(shutdownCtx); err != nil {
		cancel()
		log.Printf("Не удалось корректно остановить сервер: %v", err)
		os.Exit(1)
	}
	cancel()

	fmt.Println("Сервер остановлен")
}

// startupSummary описывает, с какими настройками поднят сервис
func startupSummary(cfg *config.Config) []string {
	lines := []string{
		fmt.Sprintf("Invento API запущен на %s:%s (APP_ENV=%s)", cfg.Server.Host, cfg.Server.Port, cfg.Server.Env),
	}

	if cfg.Mail.Enabled() {
		lines = append(lines, fmt.Sprintf("Письма участникам отправляются через %s:%d", cfg.Mail.Host, cfg.Mail.Port))
	} else {
		lines = append(lines, "SMTP не настроен: команды регистрируются, emailStatus=failed")
	}

	lines = append(lines, "Обязательные поля лидера: "+strings.Join(cfg.Registration.LeaderRequiredFields, ", "))

	if cfg.Redis.URL != "" {
		lines = append(lines, fmt.Sprintf("Блокировка входа: Redis, %d попыток за %s", cfg.Redis.LoginMaxFailures, cfg.Redis.LockoutWindow()))
	} else {
		lines = append(lines, fmt.Sprintf("Блокировка входа: в памяти процесса, %d попыток за %s", cfg.Redis.LoginMaxFailures, cfg.Redis.LockoutWindow()))
	}

	return lines
}
