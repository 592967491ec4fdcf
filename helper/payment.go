package helper

import (
	"log"
	"time"

	"shop_manager/database"
	"shop_manager/model"

	"github.com/go-co-op/gocron/v2"
)

var paymentScheduler gocron.Scheduler

// ExpireStalePayments hủy các giao dịch PENDING quá cửa sổ 15 phút của VNPay
func ExpireStalePayments() {
	db := database.DB
	cutoff := time.Now().Add(-15 * time.Minute)

	result := db.Model(&model.Payment{}).
		Where("status = ? AND created_at < ?", model.PaymentStatusPending, cutoff).
		Update("status", model.PaymentStatusExpired)
	if result.Error != nil {
		log.Printf("Lỗi hủy giao dịch quá hạn: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã hủy %d giao dịch thanh toán quá hạn", result.RowsAffected)
	}
}

func StartPaymentExpiryScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	paymentScheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(ExpireStalePayments),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Payment expiry scheduler started (every 5m)")
}

func StopPaymentExpiryScheduler() {
	if paymentScheduler != nil {
		_ = paymentScheduler.Shutdown()
	}
}
