package api

import "time"

// Comment представляет отображаемый комментарий
type Comment struct {
	ID              string `json:"id"`                         // ID идентификатор элемента (comment-...)
	Key             string `json:"key"`                        // Key ключ идентичности записи
	Name            string `json:"name"`                       // Name имя автора
	Comment         string `json:"comment"`                    // Comment текст комментария
	ServerTimestamp string `json:"server_timestamp,omitempty"` // ServerTimestamp время публикации в таблице
	ClientTimestamp string `json:"client_timestamp,omitempty"` // ClientTimestamp идентификатор отправки
	Pending         bool   `json:"pending"`                    // Pending ожидает подтверждения лентой
}

// CommentsResponse представляет ответ со списком комментариев
type CommentsResponse struct {
	Comments []Comment `json:"comments"`
	Count    int       `json:"count"`
}

// SubmissionRequest представляет запрос о завершенной отправке формы
type SubmissionRequest struct {
	Name            string `json:"name"`
	Comment         string `json:"comment"`
	ClientTimestamp string `json:"client_timestamp,omitempty"` // ISO-8601; если пуст, генерируется сервером
}

// SubmissionResponse представляет ответ на отправку
type SubmissionResponse struct {
	SubmittedAt     time.Time `json:"submitted_at"`
	ID              string    `json:"id"`               // ID квитанции
	ClientTimestamp string    `json:"client_timestamp"` // ClientTimestamp под которым показано эхо
}

// DownloadResponse представляет состояние разблокировки загрузки
type DownloadResponse struct {
	Available        bool `json:"available"`
	RecentSubmission bool `json:"recent_submission"`
}
