package service

import "errors"

// 服務層的哨兵錯誤，handler 以 errors.Is 對應到 HTTP 狀態碼
var (
	ErrDebateNotFound     = errors.New("辯論不存在")
	ErrTopicNotFound      = errors.New("題目不存在")
	ErrUserNotFound       = errors.New("用戶不存在，請先同步帳號")
	ErrInvalidCredentials = errors.New("帳號或密碼錯誤")
	ErrAlreadyJoined      = errors.New("已經加入過這場辯論")
	ErrNotJoined          = errors.New("尚未加入這場辯論")
	ErrDebateCancelled    = errors.New("這場辯論已被取消")
	ErrDebateLocked       = errors.New("辯論進行中或已結束，無法退出")
	ErrAlreadyRevealed    = errors.New("題目已經揭示過了")
	ErrDebateModified     = errors.New("辯論已被其他操作更新，請重新整理後再試")
	ErrNoTopicsAvailable  = errors.New("沒有未使用的題目，請先新增題目")
	ErrTopicInUse         = errors.New("題目已被辯論引用，無法刪除")
	ErrInvalidStatus      = errors.New("無效的狀態轉換")
)
