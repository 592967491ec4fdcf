package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"shop_manager/database"
	"shop_manager/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: redisAddr()})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

func redisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// StockSnapshot là payload tồn kho đẩy xuống client theo thời gian thực
type StockSnapshot struct {
	ProductID uint             `json:"productId"`
	Total     int              `json:"total"`
	Sizes     []StockSizeEntry `json:"sizes,omitempty"`
}

type StockSizeEntry struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// WebSocketConnection xử lý WS connection theo dõi tồn kho một sản phẩm
func WebSocketConnection(c *websocket.Conn) {
	// Lấy productId từ route
	productIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(productIdStr, 10, 64)
	productId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if clients[productId] != nil {
			delete(clients[productId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	mu.Lock()
	if clients[productId] == nil {
		clients[productId] = make(map[*websocket.Conn]bool)
	}
	clients[productId][c] = true
	mu.Unlock()

	// Gửi snapshot tồn kho lần đầu
	if snapshot, err := FetchProductStock(productId); err == nil {
		c.WriteJSON(snapshot)
	}

	// Sub kênh Redis
	pubsub := redisClient.Subscribe(
		context.Background(),
		fmt.Sprintf("product:%d", productId),
	)
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[productId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[productId], conn)
			}
		}
		mu.Unlock()
	}
}

// FetchProductStock đọc tồn kho hiện tại của sản phẩm (gộp theo size nếu có)
func FetchProductStock(productId uint) (StockSnapshot, error) {
	snapshot := StockSnapshot{ProductID: productId}

	var product model.Product
	if err := database.DB.First(&product, "id = ?", productId).Error; err != nil {
		return snapshot, err
	}

	if product.SizeID == nil {
		snapshot.Total = product.StockQuantity
		return snapshot, nil
	}

	var details []model.SizeDetail
	if err := database.DB.
		Where("size_id = ?", *product.SizeID).
		Find(&details).Error; err != nil {
		return snapshot, err
	}

	for _, d := range details {
		snapshot.Total += d.Stock
		snapshot.Sizes = append(snapshot.Sizes, StockSizeEntry{Size: d.Size, Stock: d.Stock})
	}
	return snapshot, nil
}

// BroadcastProductStock publish tồn kho mới nhất lên Redis để mọi instance
// đẩy xuống các WS client đang theo dõi sản phẩm
func BroadcastProductStock(productId uint) {
	snapshot, err := FetchProductStock(productId)
	if err != nil {
		log.Printf("Error loading stock for broadcast: %v", err)
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Error encoding stock broadcast: %v", err)
		return
	}

	if err := redisClient.Publish(
		context.Background(),
		fmt.Sprintf("product:%d", productId),
		payload,
	).Err(); err != nil {
		log.Printf("Error publishing stock broadcast: %v", err)
	}
}
