package helper

import (
	"log"
	"time"

	"shop_manager/database"
	"shop_manager/model"

	"github.com/robfig/cron/v3"
)

var cartCleanupScheduler *cron.Cron

// CleanupAbandonedCarts xóa các dòng giỏ hàng không được đụng tới trong 30 ngày
// và các giỏ đã rỗng sau đó
func CleanupAbandonedCarts() {
	db := database.DB
	cutoff := time.Now().AddDate(0, 0, -30)

	result := db.Where("updated_at < ?", cutoff).Delete(&model.CartDetail{})
	if result.Error != nil {
		log.Printf("Lỗi dọn giỏ hàng bỏ quên: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã xóa %d dòng giỏ hàng bỏ quên", result.RowsAffected)
	}

	// Giỏ không còn dòng nào thì xóa luôn
	if err := db.
		Where("id NOT IN (?)", db.Model(&model.CartDetail{}).Select("cart_id")).
		Delete(&model.Cart{}).Error; err != nil {
		log.Printf("Lỗi dọn giỏ hàng rỗng: %v", err)
	}
}

func StartCartCleanupScheduler() {
	cartCleanupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy 3h sáng hằng ngày
	_, err := cartCleanupScheduler.AddFunc("0 3 * * *", CleanupAbandonedCarts)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	cartCleanupScheduler.Start()
	log.Println("Scheduler dọn giỏ hàng đã khởi động (3h sáng hằng ngày)")
}

func StopCartCleanupScheduler() {
	if cartCleanupScheduler != nil {
		cartCleanupScheduler.Stop()
	}
}
