package simulator

import (
	"fmt"
	"time"

	"github.com/xitongsys/parquet-go/schema"
)

// Output topics, one per event family.
const (
	TopicVisits       = "cafe_visit_events"
	TopicOrders       = "cafe_order_events"
	TopicBrews        = "cafe_brew_events"
	TopicServes       = "cafe_serve_events"
	TopicComments     = "cafe_comment_events"
	TopicPurchases    = "cafe_purchase_events"
	TopicDaySummaries = "cafe_day_summary_events"
)

// BaseEvent is the common structure for all events
type BaseEvent struct {
	Timestamp    int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType    string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerID   string `json:"customerId,omitempty" parquet:"name=customerId,type=BYTE_ARRAY,convertedtype=UTF8"`
	CustomerName string `json:"customerName,omitempty" parquet:"name=customerName,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// VisitEvent represents a customer walking in
type VisitEvent struct {
	BaseEvent
	RelationshipLevel string `json:"relationshipLevel" parquet:"name=relationshipLevel,type=BYTE_ARRAY,convertedtype=UTF8"`
	VisitCount        int32  `json:"visitCount" parquet:"name=visitCount,type=INT32"`
	IsReturning       bool   `json:"isReturning" parquet:"name=isReturning,type=BOOLEAN"`
	Persona           string `json:"persona,omitempty" parquet:"name=persona,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// OrderPlacedEvent represents an order hitting the till
type OrderPlacedEvent struct {
	BaseEvent
	OrderID     string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Description string  `json:"description" parquet:"name=description,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemCount   int32   `json:"itemCount" parquet:"name=itemCount,type=INT32"`
	Subtotal    float64 `json:"subtotal" parquet:"name=subtotal,type=DOUBLE"`
	Tax         float64 `json:"tax" parquet:"name=tax,type=DOUBLE"`
	Total       float64 `json:"total" parquet:"name=total,type=DOUBLE"`
	Status      string  `json:"status" parquet:"name=status,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// BrewEvent represents one drink coming off the machines
type BrewEvent struct {
	BaseEvent
	OrderID          string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Drink            string  `json:"drink" parquet:"name=drink,type=BYTE_ARRAY,convertedtype=UTF8"`
	Grind            string  `json:"grind,omitempty" parquet:"name=grind,type=BYTE_ARRAY,convertedtype=UTF8"`
	WaterTemp        float64 `json:"waterTemp" parquet:"name=waterTemp,type=DOUBLE"`
	BrewTime         float64 `json:"brewTime" parquet:"name=brewTime,type=DOUBLE"`
	Quality          float64 `json:"quality" parquet:"name=quality,type=DOUBLE"`
	TemperatureScore float64 `json:"temperatureScore,omitempty" parquet:"name=temperatureScore,type=DOUBLE"`
	TimingScore      float64 `json:"timingScore,omitempty" parquet:"name=timingScore,type=DOUBLE"`
	GrindScore       float64 `json:"grindScore,omitempty" parquet:"name=grindScore,type=DOUBLE"`
	MilkScore        float64 `json:"milkScore,omitempty" parquet:"name=milkScore,type=DOUBLE"`
	Duration         float64 `json:"duration" parquet:"name=duration,type=DOUBLE"`
}

// ServeEvent represents the order handed over and paid
type ServeEvent struct {
	BaseEvent
	OrderID      string  `json:"orderId" parquet:"name=orderId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Quality      float64 `json:"quality" parquet:"name=quality,type=DOUBLE"`
	Satisfaction float64 `json:"satisfaction" parquet:"name=satisfaction,type=DOUBLE"`
	Mood         string  `json:"mood" parquet:"name=mood,type=BYTE_ARRAY,convertedtype=UTF8"`
	Payment      float64 `json:"payment" parquet:"name=payment,type=DOUBLE"`
	Tip          float64 `json:"tip" parquet:"name=tip,type=DOUBLE"`
	WaitMinutes  float64 `json:"waitMinutes" parquet:"name=waitMinutes,type=DOUBLE"`
}

// CommentEvent represents flavor text a customer leaves behind
type CommentEvent struct {
	BaseEvent
	Comment      string  `json:"comment" parquet:"name=comment,type=BYTE_ARRAY,convertedtype=UTF8"`
	Liked        bool    `json:"liked" parquet:"name=liked,type=BOOLEAN"`
	Satisfaction float64 `json:"satisfaction" parquet:"name=satisfaction,type=DOUBLE"`
}

// PurchaseEvent represents an equipment upgrade
type PurchaseEvent struct {
	BaseEvent
	ItemID     string  `json:"itemId" parquet:"name=itemId,type=BYTE_ARRAY,convertedtype=UTF8"`
	ItemName   string  `json:"itemName" parquet:"name=itemName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Category   string  `json:"category" parquet:"name=category,type=BYTE_ARRAY,convertedtype=UTF8"`
	Tier       int32   `json:"tier" parquet:"name=tier,type=INT32"`
	Price      float64 `json:"price" parquet:"name=price,type=DOUBLE"`
	MoneyAfter float64 `json:"moneyAfter" parquet:"name=moneyAfter,type=DOUBLE"`
}

// DaySummaryEvent represents the till count after close
type DaySummaryEvent struct {
	BaseEvent
	Day             int32   `json:"day" parquet:"name=day,type=INT32"`
	CustomersServed int32   `json:"customersServed" parquet:"name=customersServed,type=INT32"`
	DrinksServed    int32   `json:"drinksServed" parquet:"name=drinksServed,type=INT32"`
	Revenue         float64 `json:"revenue" parquet:"name=revenue,type=DOUBLE"`
	Tips            float64 `json:"tips" parquet:"name=tips,type=DOUBLE"`
	AvgQuality      float64 `json:"avgQuality" parquet:"name=avgQuality,type=DOUBLE"`
	AvgSatisfaction float64 `json:"avgSatisfaction" parquet:"name=avgSatisfaction,type=DOUBLE"`
	ReturningRate   float64 `json:"returningRate" parquet:"name=returningRate,type=DOUBLE"`
	ClosingMoney    float64 `json:"closingMoney" parquet:"name=closingMoney,type=DOUBLE"`
	Reputation      float64 `json:"reputation" parquet:"name=reputation,type=DOUBLE"`
}

func GetSchema(eventType string) (*schema.SchemaHandler, error) {
	var sh *schema.SchemaHandler
	var err error

	switch eventType {
	case TopicVisits:
		sh, err = schema.NewSchemaHandlerFromStruct(new(VisitEvent))
	case TopicOrders:
		sh, err = schema.NewSchemaHandlerFromStruct(new(OrderPlacedEvent))
	case TopicBrews:
		sh, err = schema.NewSchemaHandlerFromStruct(new(BrewEvent))
	case TopicServes:
		sh, err = schema.NewSchemaHandlerFromStruct(new(ServeEvent))
	case TopicComments:
		sh, err = schema.NewSchemaHandlerFromStruct(new(CommentEvent))
	case TopicPurchases:
		sh, err = schema.NewSchemaHandlerFromStruct(new(PurchaseEvent))
	case TopicDaySummaries:
		sh, err = schema.NewSchemaHandlerFromStruct(new(DaySummaryEvent))
	default:
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating schema for %s: %w", eventType, err)
	}

	return sh, nil
}

func NewBaseEvent(eventType string, timestamp time.Time) BaseEvent {
	return BaseEvent{
		Timestamp: timestamp.Unix(),
		EventType: eventType,
	}
}
