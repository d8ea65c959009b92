// Package mailer 負責發送通知郵件。
// 核心只依賴 Notifier 介面，實際的投遞方式（Resend API 或純記錄）由啟動時決定。
// 郵件失敗一律由呼叫端記錄後吞掉，不會影響任何狀態轉換。
package mailer

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// Notifier 是核心消費的通知介面
type Notifier interface {
	Send(to, subject, html string) error
}

// ResendMailer 透過 Resend API 發送郵件
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (m *ResendMailer) Send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("email sent: id=%s to=%s subject=%q", sent.Id, to, subject)
	return nil
}

// LogMailer 只把郵件寫進日誌，用於沒有配置 API key 的本地開發環境
type LogMailer struct{}

func (m *LogMailer) Send(to, subject, html string) error {
	log.Printf("email (log only): to=%s subject=%q body=%d bytes", to, subject, len(html))
	return nil
}
