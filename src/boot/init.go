package boot

import (
	"log"
	"shareit/src/config"
	"shareit/src/lib"
	"shareit/src/models"

	"gorm.io/gorm"
)

func InitDb(db *gorm.DB) *gorm.DB {
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	return db
}

// InitBroker ensures the booking topic exists and returns a publisher, or nil
// when KAFKA_BROKER is unset.
func InitBroker() *lib.KafkaPublisher {
	broker := config.GetKafkaBroker()
	if broker == "" {
		log.Println("KAFKA_BROKER not set, booking events disabled")
		return nil
	}
	if _, err := lib.KafkaCreateTopics(config.BOOKING_EVENTS_TOPIC); err != nil {
		log.Printf("Could not create topic %s: %s\n", config.BOOKING_EVENTS_TOPIC, err.Error())
	}
	p, err := lib.NewKafkaPublisher(broker, "shareit-api", config.BOOKING_EVENTS_TOPIC)
	if err != nil {
		return nil
	}
	return p
}
