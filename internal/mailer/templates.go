package mailer

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"debate_hub/internal/utils"
)

// 信件採用表格排版以維持郵件客戶端相容性，外觀沿用 DebateHub 的藍黑配色

const shellTmpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="background-color:#ffffff;margin:0;padding:0;font-family:'Inter','Helvetica',sans-serif;">
  <table width="100%" border="0" cellpadding="0" cellspacing="0" role="presentation">
    <tr><td align="center" style="padding:24px;">
      <table width="700" border="0" cellpadding="0" cellspacing="0" role="presentation" style="max-width:700px;width:100%;">
        <tr><td align="center" style="padding-bottom:24px;">
          <span style="font-size:28px;font-weight:700;color:#1e40ff;">Debate</span><span style="font-size:28px;font-weight:700;color:#040b22;">Hub</span>
        </td></tr>
        <tr><td style="background-color:#f5f5f7;border-radius:12px;padding:32px;">
{{.Inner}}
        </td></tr>
        <tr><td align="center" style="padding-top:24px;color:#6b7280;font-size:12px;">
          DebateHub Notification — you are receiving this because you joined a debate.
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

const topicRevealedInner = `<h1 style="font-size:24px;color:#040b22;margin:0 0 16px;">Topic Revealed! Time to Prepare</h1>
<p style="font-size:16px;color:#040b22;margin:0 0 16px;">Hi {{.UserName}},</p>
<p style="font-size:16px;color:#040b22;margin:0 0 16px;">The topic for your upcoming debate has just been revealed:</p>
<h2 style="font-size:20px;color:#1e40ff;margin:0 0 8px;">{{.TopicTitle}}</h2>
<p style="font-size:15px;color:#374151;margin:0 0 24px;">{{.TopicDescription}}</p>
<table border="0" cellpadding="4" cellspacing="0" role="presentation" style="font-size:15px;color:#040b22;">
  <tr><td style="font-weight:600;">Date</td><td>{{.Date}}</td></tr>
  <tr><td style="font-weight:600;">Time</td><td>{{.Time}}</td></tr>
  <tr><td style="font-weight:600;">Location</td><td>{{.Location}}</td></tr>
</table>`

const debateJoinedInner = `<h1 style="font-size:24px;color:#040b22;margin:0 0 16px;">Debate Joined Successfully</h1>
<p style="font-size:16px;color:#040b22;margin:0 0 16px;">Hi {{.UserName}},</p>
<p style="font-size:16px;color:#040b22;margin:0 0 16px;">You have joined an upcoming debate. The topic stays secret until the scheduled time — keep an eye on your inbox.</p>
<table border="0" cellpadding="4" cellspacing="0" role="presentation" style="font-size:15px;color:#040b22;">
  <tr><td style="font-weight:600;">Date</td><td>{{.Date}}</td></tr>
  <tr><td style="font-weight:600;">Time</td><td>{{.Time}}</td></tr>
  <tr><td style="font-weight:600;">Location</td><td>{{.Location}}</td></tr>
</table>`

var (
	shellTemplate         = template.Must(template.New("shell").Parse(shellTmpl))
	topicRevealedTemplate = template.Must(template.New("topic_revealed").Parse(topicRevealedInner))
	debateJoinedTemplate  = template.Must(template.New("debate_joined").Parse(debateJoinedInner))
)

// TopicRevealedData 是題目揭示通知需要的欄位
type TopicRevealedData struct {
	UserName         string
	TopicTitle       string
	TopicDescription string
	Date             time.Time
	Time             string // "HH:MM" IST
	Location         string
}

// DebateJoinedData 是加入辯論通知需要的欄位
type DebateJoinedData struct {
	UserName string
	Date     time.Time
	Time     string
	Location string
}

// TopicRevealed 渲染題目揭示通知的 HTML 內容
func TopicRevealed(data TopicRevealedData) (string, error) {
	inner := struct {
		UserName, TopicTitle, TopicDescription, Date, Time, Location string
	}{
		UserName:         data.UserName,
		TopicTitle:       data.TopicTitle,
		TopicDescription: data.TopicDescription,
		Date:             FormatDate(data.Date),
		Time:             FormatTimeIST(data.Time),
		Location:         data.Location,
	}
	return render(topicRevealedTemplate, inner)
}

// DebateJoined 渲染加入辯論通知的 HTML 內容
func DebateJoined(data DebateJoinedData) (string, error) {
	inner := struct {
		UserName, Date, Time, Location string
	}{
		UserName: data.UserName,
		Date:     FormatDate(data.Date),
		Time:     FormatTimeIST(data.Time),
		Location: data.Location,
	}
	return render(debateJoinedTemplate, inner)
}

func render(inner *template.Template, data interface{}) (string, error) {
	var body strings.Builder
	if err := inner.Execute(&body, data); err != nil {
		return "", err
	}

	var out strings.Builder
	err := shellTemplate.Execute(&out, struct{ Inner template.HTML }{Inner: template.HTML(body.String())})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// FormatTimeIST 把 24 小時制 "HH:MM" 轉為 "h:MM AM/PM IST" 顯示格式
func FormatTimeIST(clock string) string {
	hour, minute, err := utils.ParseClock(clock)
	if err != nil {
		return clock
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s IST", displayHour, minute, period)
}

// FormatDate 以長格式顯示日曆日，例如 "Saturday, March 15, 2025"
func FormatDate(date time.Time) string {
	return date.UTC().Format("Monday, January 2, 2006")
}
