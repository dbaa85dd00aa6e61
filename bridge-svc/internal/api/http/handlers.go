package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"menu-bridge/bridge-svc/internal/domain"
	"menu-bridge/bridge-svc/internal/service"

	"github.com/gorilla/mux"
)

const accessTokenCookie = "access_token"

// publicMirrorKeys are readable without an admin session. Every other key
// carries customer or order data.
var publicMirrorKeys = map[string]bool{
	domain.KeyCategories: true,
	domain.KeyMenuItems:  true,
}

type Handler struct {
	Bridge    service.BridgeInterface
	QR        service.QRGenerator
	LoginPath string
}

func NewHandler(bridge service.BridgeInterface, qr service.QRGenerator, loginPath string) *Handler {
	return &Handler{Bridge: bridge, QR: qr, LoginPath: loginPath}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(accessTokenMiddleware)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/catalog/sync", h.syncCatalog).Methods("POST")
	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.orderQRCode).Methods("GET")
	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", h.requireAdmin(h.updateReservation)).Methods("PATCH")
	r.HandleFunc("/api/reservations/{id}", h.requireAdmin(h.deleteReservation)).Methods("DELETE")
	r.HandleFunc("/api/ratings", h.createRating).Methods("POST")
	r.HandleFunc("/api/mirror/{key}", h.mirrorValue).Methods("GET")
	r.HandleFunc("/api/admin/session", h.requireAdmin(h.adminSession)).Methods("GET")
	r.HandleFunc("/api/admin/sync", h.requireAdmin(h.syncAdmin)).Methods("POST")
}

// accessTokenMiddleware moves the caller's access token into the request
// context, from the Authorization header or the access_token cookie.
func accessTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		} else if cookie, err := r.Cookie(accessTokenCookie); err == nil {
			token = cookie.Value
		}
		if token != "" {
			r = r.WithContext(domain.WithAccessToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

type redirectNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func (n redirectNavigator) Redirect(path string) {
	http.Redirect(n.w, n.r, path, http.StatusFound)
}

type adminHandlerFunc func(w http.ResponseWriter, r *http.Request, session *domain.Session)

func (h *Handler) requireAdmin(next adminHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.Bridge.RequireAdminOrRedirect(r.Context(), redirectNavigator{w: w, r: r}, h.LoginPath)
		if session == nil {
			return
		}
		next(w, r, session)
	}
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "bridge-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) syncCatalog(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.Bridge.SyncPublicCatalog(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var input domain.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	order, err := h.Bridge.CreateOrder(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		return
	}

	png, err := h.QR.Generate(orderID)
	if err != nil {
		log.Printf("ERROR: failed to generate QR code for order %d: %v", orderID, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var input domain.ReservationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	reservation, err := h.Bridge.CreateReservation(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request, _ *domain.Session) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid reservation id", http.StatusBadRequest)
		return
	}

	var patch domain.Row
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || len(patch) == 0 {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	reservation, err := h.Bridge.UpdateReservation(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) deleteReservation(w http.ResponseWriter, r *http.Request, _ *domain.Session) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid reservation id", http.StatusBadRequest)
		return
	}

	if err := h.Bridge.DeleteReservation(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createRating(w http.ResponseWriter, r *http.Request) {
	var input domain.RatingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}
	if input.ItemID == 0 || input.Stars < 1 || input.Stars > 5 {
		http.Error(w, "Missing item_id or stars out of range", http.StatusBadRequest)
		return
	}

	rating, err := h.Bridge.CreateRating(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

func (h *Handler) mirrorValue(w http.ResponseWriter, r *http.Request) {
	if publicMirrorKeys[mux.Vars(r)["key"]] {
		h.writeMirrorValue(w, r, nil)
		return
	}
	h.requireAdmin(h.writeMirrorValue)(w, r)
}

func (h *Handler) writeMirrorValue(w http.ResponseWriter, r *http.Request, _ *domain.Session) {
	raw, ok := h.Bridge.MirrorValue(r.Context(), mux.Vars(r)["key"])
	if !ok {
		http.Error(w, "Mirror key not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(raw))
}

func (h *Handler) adminSession(w http.ResponseWriter, r *http.Request, session *domain.Session) {
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) syncAdmin(w http.ResponseWriter, r *http.Request, _ *domain.Session) {
	ok, err := h.Bridge.SyncAdminData(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"synced": ok})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var remote *service.RemoteQueryError
	if errors.As(err, &remote) {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	log.Printf("ERROR: %v", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
