package handlers

import (
	"VaultKeeper/internal/service"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
)

// deviceTypeUnknown — код "неизвестный браузер" клиентского протокола,
// используется при отсутствии заголовка Device-Type.
const deviceTypeUnknown = 14

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listEnvelope — общий постраничный конверт списковых ответов.
// Курсор пагинации не реализован, ContinuationToken всегда null.
func listEnvelope(items any) map[string]any {
	return map[string]any{
		"Data":              items,
		"Object":            "list",
		"ContinuationToken": nil,
	}
}

// clientContext собирает контекст вызывающего: id пользователя,
// тип устройства из заголовка и адрес клиента.
func clientContext(r *http.Request, userID string) service.ClientContext {
	device := deviceTypeUnknown
	if v := r.Header.Get("Device-Type"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			device = n
		}
	}

	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}

	return service.ClientContext{UserID: userID, DeviceType: device, IP: ip}
}
