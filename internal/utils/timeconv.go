package utils

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat 表示辯論時間字串不是合法的 24 小時制 "HH:MM"
var ErrInvalidTimeFormat = errors.New("無效的時間格式，必須為 24 小時制 HH:MM")

// istLocation 是部署使用的固定偏移時區（+5:30），不做日光節約調整
var istLocation = time.FixedZone("IST", 5*3600+30*60)

// ParseClock 解析 "HH:MM" 字串，回傳小時與分鐘
func ParseClock(clock string) (int, int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTimeFormat
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, ErrInvalidTimeFormat
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTimeFormat
	}
	return hour, minute, nil
}

// DebateInstant 把辯論的日曆日（date 只取年月日，時間部分忽略）
// 加上 "HH:MM" 的 IST 牆上時間，轉換為絕對的 UTC 時刻。
// 純函數，唯一的失敗情況是時間字串格式錯誤。
func DebateInstant(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	year, month, day := date.UTC().Date()
	return time.Date(year, month, day, hour, minute, 0, 0, istLocation).UTC(), nil
}
