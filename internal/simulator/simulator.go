package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/equipment"
	"github.com/chrisdamba/cafesim/internal/factories"
	"github.com/chrisdamba/cafesim/internal/memory"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/pricing"
	"github.com/chrisdamba/cafesim/internal/scoring"
	"github.com/schollz/progressbar/v3"
)

// SessionStore persists snapshots between runs. The CLI wires one in when
// a session database is configured; a nil store disables checkpoints.
type SessionStore interface {
	Save(ctx context.Context, snapshot *models.SessionSnapshot) error
	Load(ctx context.Context, name string) (*models.SessionSnapshot, error)
}

type Simulator struct {
	Config        *models.Config
	CurrentTime   time.Time
	EndTime       time.Time
	Rng           *rand.Rand
	EventQueue    *models.EventQueue
	Customers     []*models.Customer
	Orders        map[string]*models.Order
	Equipment     equipment.State
	Memory        *memory.State
	Money         float64
	Day           int
	Reputation    float64
	RatingHistory []ratedVisit
	Sessions      SessionStore

	customerFactory *factories.CustomerFactory
	orderFactory    *factories.OrderFactory

	inCafe         map[string]bool
	upgradePending bool
	daily          dayTally
}

// dayTally accumulates one business day's totals between open and close.
type dayTally struct {
	customersServed int
	drinksServed    int
	revenue         float64
	tips            float64
	qualitySum      float64
	satisfactionSum float64
	returningServed int
}

// commentEntry carries a remark from serve time to the moment the
// customer actually says it on the way out.
type commentEntry struct {
	CustomerID   string
	CustomerName string
	Comment      string
	Liked        bool
	Satisfaction float64
}

// equipmentPurchase tracks one upgrade attempt through the queue.
type equipmentPurchase struct {
	Item       equipment.Item
	MoneyAfter float64
	failed     bool
}

func NewSimulator(config *models.Config) *Simulator {
	seed := int64(config.Seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sim := &Simulator{
		Config:          config,
		CurrentTime:     config.StartDate,
		EndTime:         config.StartDate.AddDate(0, 0, config.Days),
		Rng:             rng,
		EventQueue:      models.NewEventQueue(),
		Orders:          make(map[string]*models.Order),
		Equipment:       equipment.StarterState(),
		Memory:          memory.NewState(),
		Money:           config.InitialMoney,
		Day:             1,
		Reputation:      3.0,
		customerFactory: factories.NewCustomerFactory(rng),
		orderFactory:    factories.NewOrderFactory(rng),
	}
	return sim
}

// Restore rewinds the simulator to a saved snapshot. Call before Run; the
// run then continues for the configured number of days from the saved
// clock.
func (s *Simulator) Restore(snapshot *models.SessionSnapshot) {
	s.Day = snapshot.Day
	s.CurrentTime = snapshot.Clock
	s.EndTime = snapshot.Clock.AddDate(0, 0, s.Config.Days)
	s.Money = snapshot.Money
	s.Reputation = snapshot.Reputation
	s.Equipment = snapshot.Equipment
	s.Memory = snapshot.Memory
	if len(snapshot.Customers) > 0 {
		s.Customers = snapshot.Customers
	}
	log.Printf("Restored session %q: day %d, %s in the till, %d customers on the books",
		snapshot.Name, snapshot.Day, pricing.FormatMoney(snapshot.Money), len(snapshot.Customers))
}

func (s *Simulator) initializeData() {
	// a restored session brings its own neighborhood
	if len(s.Customers) == 0 {
		s.Customers = make([]*models.Customer, s.Config.InitialCustomers)
		for i := 0; i < s.Config.InitialCustomers; i++ {
			s.Customers[i] = s.customerFactory.CreateCustomer(s.Config)
		}
	}
	s.inCafe = make(map[string]bool)

	s.EventQueue.Enqueue(&models.Event{
		Time: s.nextOpening(s.CurrentTime),
		Type: models.EventCafeOpen,
	})
}

func (s *Simulator) processEvent(event *models.Event) {
	switch event.Type {
	case models.EventCafeOpen:
		s.handleCafeOpen()
	case models.EventCafeClose:
		s.handleCafeClose()
	case models.EventCustomerArrival:
		s.handleCustomerArrival(event.Data.(*models.Customer))
	case models.EventPlaceOrder:
		s.handlePlaceOrder(event)
	case models.EventBrewDrink:
		s.handleBrewDrink(event.Data.(*models.Brew))
	case models.EventServeCustomer:
		s.handleServeCustomer(event.Data.(*models.Order))
	case models.EventCustomerComment:
		s.handleCustomerComment(event.Data.(*commentEntry))
	case models.EventEquipmentUpgrade:
		s.handleEquipmentUpgrade(event.Data.(*equipmentPurchase))
	case models.EventAddNewCustomer:
		s.handleAddNewCustomer()
	case models.EventDaySummary:
		s.handleDaySummary(event.Data.(*models.DaySummary))
	case models.EventSessionCheckpoint:
		s.handleSessionCheckpoint()
	}
}

func (s *Simulator) Run() {
	out := s.determineOutputDestination()
	defer func() {
		if err := out.Close(); err != nil {
			log.Printf("Error closing output: %v", err)
		}
	}()

	s.initializeData()
	log.Printf("Simulation starts from %s to %s\n",
		s.CurrentTime.Format(time.RFC3339), s.EndTime.Format(time.RFC3339))

	var ticker *time.Ticker
	if s.Config.Continuous {
		// pace one simulated minute per wall second for live sinks
		ticker = time.NewTicker(1 * time.Second)
		defer ticker.Stop()
	}

	totalMinutes := int64(s.EndTime.Sub(s.CurrentTime) / time.Minute)
	bar := progressbar.Default(totalMinutes, "simulating")

	var eventsCount int
	for s.CurrentTime.Before(s.EndTime) {
		if ticker != nil {
			<-ticker.C
		}

		// process any events that are due
		for {
			nextEvent := s.EventQueue.Peek()
			if nextEvent == nil || nextEvent.Time.After(s.CurrentTime) {
				break
			}
			event := s.EventQueue.Dequeue()
			if event == nil {
				break
			}
			s.processEvent(event)
			eventsCount++

			// serialize and write the event
			eventMsg, err := s.serializeEvent(*event)
			if err != nil {
				log.Printf("Error serializing event: %v", err)
				continue
			}
			if eventMsg == nil {
				continue
			}
			if err := out.WriteMessage(eventMsg.Topic, eventMsg.Message); err != nil {
				log.Printf("Failed to write message: %v", err)
			}
		}

		// run time-step simulation
		s.simulateTimeStep()

		// advance simulation time
		s.CurrentTime = s.CurrentTime.Add(1 * time.Minute)
		_ = bar.Add(1)
	}

	_ = bar.Finish()

	if s.Config.AutoSave && s.Sessions != nil {
		s.saveSession()
	}

	log.Printf("Simulation completed: %d days, %d events, closing balance %s",
		s.Config.Days, eventsCount, pricing.FormatMoney(s.Money))
	if regulars := memory.RegularCustomers(s.Memory); len(regulars) > 0 {
		best := regulars[0]
		log.Printf("Best regular: %s, %d visits, %s spent",
			best.Name, best.VisitCount, pricing.FormatMoney(best.TotalSpent))
	}
}

// simulateTimeStep rolls arrival dice for every customer not already in
// the café. Outside opening hours nobody shows up.
func (s *Simulator) simulateTimeStep() {
	if !s.isOpen(s.CurrentTime) {
		return
	}
	for _, customer := range s.Customers {
		if s.inCafe[customer.ID] {
			continue
		}
		if s.shouldCustomerArrive(customer) {
			s.inCafe[customer.ID] = true
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime,
				Type: models.EventCustomerArrival,
				Data: customer,
			})
		}
	}
}

// serializeEvent turns a processed event into its topic message. Events
// that are pure bookkeeping return a nil message and are not written.
func (s *Simulator) serializeEvent(event models.Event) (*models.EventMessage, error) {
	var topic string
	var eventData interface{}

	base := NewBaseEvent(event.Type, event.Time)

	switch event.Type {
	case models.EventCustomerArrival:
		customer := event.Data.(*models.Customer)
		base.CustomerID = customer.ID
		base.CustomerName = customer.Name

		level := memory.LevelStranger
		visitCount := 0
		if profile, ok := s.Memory.Customers[customer.Name]; ok {
			level = profile.RelationshipLevel
			visitCount = profile.VisitCount
		}

		eventData = VisitEvent{
			BaseEvent:         base,
			RelationshipLevel: string(level),
			VisitCount:        int32(visitCount + 1),
			IsReturning:       memory.IsReturningCustomer(s.Memory, customer.Name),
			Persona:           customer.Persona,
		}
		topic = TopicVisits

	case models.EventPlaceOrder:
		order := event.Data.(*models.Order)
		base.CustomerID = order.CustomerID
		base.CustomerName = order.CustomerName

		eventData = OrderPlacedEvent{
			BaseEvent:   base,
			OrderID:     order.ID,
			Description: describeOrder(order.Items),
			ItemCount:   int32(len(order.Items)),
			Subtotal:    order.Quote.Subtotal,
			Tax:         order.Quote.Tax,
			Total:       order.Quote.Total,
			Status:      order.Status,
		}
		topic = TopicOrders

	case models.EventBrewDrink:
		brew := event.Data.(*models.Brew)
		if order, ok := s.Orders[brew.OrderID]; ok {
			base.CustomerID = order.CustomerID
			base.CustomerName = order.CustomerName
		}

		eventData = BrewEvent{
			BaseEvent:        base,
			OrderID:          brew.OrderID,
			Drink:            brew.Drink,
			Grind:            string(brew.Params.Grind),
			WaterTemp:        brew.Params.WaterTemp,
			BrewTime:         brew.Params.BrewTime,
			Quality:          brew.Result.Total,
			TemperatureScore: brew.Result.Components[scoring.ComponentTemperature],
			TimingScore:      brew.Result.Components[scoring.ComponentTiming],
			GrindScore:       brew.Result.Components[scoring.ComponentGrind],
			MilkScore:        brew.Result.Components[scoring.ComponentMilk],
			Duration:         brew.Duration,
		}
		topic = TopicBrews

	case models.EventServeCustomer:
		order := event.Data.(*models.Order)
		base.CustomerID = order.CustomerID
		base.CustomerName = order.CustomerName

		eventData = ServeEvent{
			BaseEvent:    base,
			OrderID:      order.ID,
			Quality:      order.Quality,
			Satisfaction: order.Satisfaction,
			Mood:         models.MoodFor(order.Satisfaction),
			Payment:      order.Quote.Total,
			Tip:          order.Tip,
			WaitMinutes:  order.ServedAt.Sub(order.PlacedAt).Minutes(),
		}
		topic = TopicServes

	case models.EventCustomerComment:
		entry := event.Data.(*commentEntry)
		base.CustomerID = entry.CustomerID
		base.CustomerName = entry.CustomerName

		eventData = CommentEvent{
			BaseEvent:    base,
			Comment:      entry.Comment,
			Liked:        entry.Liked,
			Satisfaction: entry.Satisfaction,
		}
		topic = TopicComments

	case models.EventEquipmentUpgrade:
		purchase := event.Data.(*equipmentPurchase)
		if purchase.failed {
			return nil, nil
		}

		eventData = PurchaseEvent{
			BaseEvent:  base,
			ItemID:     purchase.Item.ID,
			ItemName:   purchase.Item.Name,
			Category:   string(purchase.Item.Category),
			Tier:       int32(purchase.Item.Tier),
			Price:      purchase.Item.Price,
			MoneyAfter: purchase.MoneyAfter,
		}
		topic = TopicPurchases

	case models.EventDaySummary:
		summary := event.Data.(*models.DaySummary)

		eventData = DaySummaryEvent{
			BaseEvent:       base,
			Day:             int32(summary.Day),
			CustomersServed: int32(summary.CustomersServed),
			DrinksServed:    int32(summary.DrinksServed),
			Revenue:         summary.Revenue,
			Tips:            summary.Tips,
			AvgQuality:      summary.AvgQuality,
			AvgSatisfaction: summary.AvgSatisfaction,
			ReturningRate:   summary.ReturningRate,
			ClosingMoney:    summary.ClosingMoney,
			Reputation:      summary.Reputation,
		}
		topic = TopicDaySummaries

	case models.EventCafeOpen, models.EventCafeClose,
		models.EventAddNewCustomer, models.EventSessionCheckpoint:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown event type: %v", event.Type)
	}

	data, err := json.Marshal(eventData)
	if err != nil {
		return nil, err
	}

	return &models.EventMessage{
		Topic:   topic,
		Message: data,
	}, nil
}

// event handlers

func (s *Simulator) handleCafeOpen() {
	log.Printf("Day %d: doors open at %s with %d customers on the books",
		s.Day, s.CurrentTime.Format("15:04"), len(s.Memory.Customers))

	closing := time.Date(s.CurrentTime.Year(), s.CurrentTime.Month(), s.CurrentTime.Day(),
		s.Config.ClosingHour, 0, 0, 0, s.CurrentTime.Location())
	s.EventQueue.Enqueue(&models.Event{
		Time: closing,
		Type: models.EventCafeClose,
	})
}

func (s *Simulator) handleCafeClose() {
	summary := s.buildDaySummary()
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime,
		Type: models.EventDaySummary,
		Data: summary,
	})

	// word of mouth: standing above the three-star baseline speeds growth
	rate := calculateGrowthRate(s.Config.CustomerGrowthRate, s.CurrentTime) * (s.Reputation / 3.0)
	expected := rate * float64(len(s.Customers))
	newCustomers := int(expected)
	if s.Rng.Float64() < expected-float64(newCustomers) {
		newCustomers++
	}

	opening := s.nextOpening(s.CurrentTime)
	for i := 0; i < newCustomers; i++ {
		s.EventQueue.Enqueue(&models.Event{
			Time: opening.Add(time.Duration(i+1) * time.Minute),
			Type: models.EventAddNewCustomer,
		})
	}

	s.Day++

	if s.Config.AutoSave && s.Sessions != nil {
		s.EventQueue.Enqueue(&models.Event{
			Time: s.CurrentTime,
			Type: models.EventSessionCheckpoint,
		})
	}

	s.EventQueue.Enqueue(&models.Event{
		Time: opening,
		Type: models.EventCafeOpen,
	})
}

func (s *Simulator) handleCustomerArrival(customer *models.Customer) {
	// a moment in the till queue before ordering
	s.EventQueue.Enqueue(&models.Event{
		Time: s.CurrentTime.Add(1 * time.Minute),
		Type: models.EventPlaceOrder,
		Data: customer,
	})
}

// handlePlaceOrder builds and prices the order, starts every drink on the
// machines and schedules the handover. The event's data is swapped to the
// order so serialization sees the receipt, not the customer.
func (s *Simulator) handlePlaceOrder(event *models.Event) {
	customer := event.Data.(*models.Customer)

	items := s.orderFactory.CreateOrder(customer, s.Config, s.CurrentTime)
	quote, err := pricing.CalculatePriceQuote(items)
	if err != nil {
		log.Printf("Error pricing order for %s: %v", customer.Name, err)
		delete(s.inCafe, customer.ID)
		return
	}

	order := &models.Order{
		ID:           generateID(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Items:        items,
		Quote:        quote,
		Status:       models.OrderStatusPlaced,
		PlacedAt:     s.CurrentTime,
	}
	s.Orders[order.ID] = order

	brews, err := s.brewOrder(order)
	if err != nil {
		log.Printf("Error brewing order %s: %v", order.ID, err)
		delete(s.Orders, order.ID)
		delete(s.inCafe, customer.ID)
		return
	}
	order.Quality = orderQuality(brews)

	serveTime := s.CurrentTime
	for i := range brews {
		serveTime = serveTime.Add(time.Duration(brews[i].Duration * float64(time.Second)))
		s.EventQueue.Enqueue(&models.Event{
			Time: serveTime,
			Type: models.EventBrewDrink,
			Data: &brews[i],
		})
	}
	if len(brews) == 0 {
		// food only, just a minute at the counter
		serveTime = serveTime.Add(1 * time.Minute)
	}

	s.EventQueue.Enqueue(&models.Event{
		Time: serveTime,
		Type: models.EventServeCustomer,
		Data: order,
	})

	event.Data = order
}

func (s *Simulator) handleBrewDrink(brew *models.Brew) {
	if order, ok := s.Orders[brew.OrderID]; ok && order.Status == models.OrderStatusPlaced {
		order.Status = models.OrderStatusBrewing
	}
	s.daily.drinksServed++
}

func (s *Simulator) handleServeCustomer(order *models.Order) {
	customer := s.getCustomer(order.CustomerID)
	if customer == nil {
		log.Printf("Error: customer not found for order %s", order.ID)
		delete(s.Orders, order.ID)
		return
	}

	level := memory.LevelStranger
	if profile, ok := s.Memory.Customers[order.CustomerName]; ok {
		level = profile.RelationshipLevel
	}
	returning := memory.IsReturningCustomer(s.Memory, order.CustomerName)

	satisfaction := s.generateSatisfaction(order.Quality, relationshipLeniency(level))
	mood := models.MoodFor(satisfaction)
	tip := s.calculateTip(customer, order.Quote.Total, mood)

	order.Status = models.OrderStatusServed
	order.ServedAt = s.CurrentTime
	order.Satisfaction = satisfaction
	order.Tip = tip

	s.Money += order.Quote.Total + tip

	var milk string
	for _, item := range order.Items {
		if item.Kind != pricing.ItemFood && item.Modifiers.Milk != "" {
			milk = item.Modifiers.Milk
			break
		}
	}
	s.Memory = memory.RecordVisit(s.Memory, order.CustomerName, memory.Visit{
		Drink:        firstDrink(order.Items),
		Milk:         milk,
		Quality:      order.Quality,
		Satisfaction: satisfaction,
		Payment:      order.Quote.Total,
		Tip:          tip,
		Allergens:    customer.Allergens,
		Timestamp:    s.CurrentTime,
	})

	if profile, ok := s.Memory.Customers[order.CustomerName]; ok && profile.RelationshipLevel != level {
		log.Print(memory.CustomerInsights(profile))
	}

	customer.LastVisitTime = s.CurrentTime
	delete(s.inCafe, customer.ID)

	// a good visit builds the habit, a bad one erodes it
	switch mood {
	case models.MoodDelighted:
		customer.VisitFrequency = math.Min(customer.VisitFrequency*1.05, 3.0)
	case models.MoodDisappointed:
		customer.VisitFrequency = math.Max(customer.VisitFrequency*0.9, 0.05)
	}

	s.recordRating(satisfaction)
	s.updateReputation()

	s.daily.customersServed++
	s.daily.revenue += order.Quote.Total
	s.daily.tips += tip
	s.daily.qualitySum += order.Quality
	s.daily.satisfactionSum += satisfaction
	if returning {
		s.daily.returningServed++
	}

	if s.shouldComment(mood) {
		comment, liked := s.generateComment(mood, firstDrink(order.Items))
		if comment != "" {
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime.Add(time.Duration(2+s.Rng.Intn(9)) * time.Minute),
				Type: models.EventCustomerComment,
				Data: &commentEntry{
					CustomerID:   customer.ID,
					CustomerName: customer.Name,
					Comment:      comment,
					Liked:        liked,
					Satisfaction: satisfaction,
				},
			})
		}
	}

	s.maybeScheduleUpgrade()

	// the serve event still holds its own pointer to the order
	delete(s.Orders, order.ID)
}

func (s *Simulator) handleCustomerComment(entry *commentEntry) {
	log.Printf("%s: %q", entry.CustomerName, entry.Comment)
}

func (s *Simulator) handleEquipmentUpgrade(purchase *equipmentPurchase) {
	s.upgradePending = false

	next, remaining, err := equipment.Purchase(s.Equipment, s.Money, purchase.Item.ID)
	if err != nil {
		log.Printf("Skipping upgrade %s: %v", purchase.Item.ID, err)
		purchase.failed = true
		return
	}

	s.Equipment = next
	s.Money = remaining
	purchase.MoneyAfter = remaining

	log.Printf("Upgraded %s to %s for %s",
		purchase.Item.Category, purchase.Item.Name, pricing.FormatMoney(purchase.Item.Price))
}

func (s *Simulator) handleAddNewCustomer() {
	customer := s.customerFactory.CreateCustomer(s.Config)
	s.Customers = append(s.Customers, customer)
	log.Printf("New face in the neighborhood: %s (%s)", customer.Name, customer.Persona)
}

func (s *Simulator) handleDaySummary(summary *models.DaySummary) {
	log.Printf("Day %d closed: %d customers, %d drinks, revenue %s, reputation %.2f",
		summary.Day, summary.CustomersServed, summary.DrinksServed,
		pricing.FormatMoney(summary.Revenue), summary.Reputation)

	stats := memory.MemoryStats(s.Memory)
	log.Printf("Ledger: %d customers known, %d regulars, %.0f%% returning",
		stats.TotalCustomers, stats.RegularCustomers+stats.FavoriteCustomers,
		memory.ReturningRate(s.Memory))

	s.daily = dayTally{}
}

func (s *Simulator) handleSessionCheckpoint() {
	if s.Sessions == nil {
		return
	}
	s.saveSession()
}

// maybeScheduleUpgrade queues the first affordable upgrade, keeping the
// configured cash reserve untouched. At most one purchase is in flight at
// a time.
func (s *Simulator) maybeScheduleUpgrade() {
	if s.upgradePending {
		return
	}
	for _, item := range equipment.AvailableUpgrades(s.Equipment) {
		if s.Money >= item.Price+s.Config.UpgradeReserve {
			s.upgradePending = true
			s.EventQueue.Enqueue(&models.Event{
				Time: s.CurrentTime,
				Type: models.EventEquipmentUpgrade,
				Data: &equipmentPurchase{Item: item},
			})
			return
		}
	}
}

func (s *Simulator) buildDaySummary() *models.DaySummary {
	summary := &models.DaySummary{
		Day:             s.Day,
		CustomersServed: s.daily.customersServed,
		DrinksServed:    s.daily.drinksServed,
		Revenue:         pricing.Round2(s.daily.revenue),
		Tips:            pricing.Round2(s.daily.tips),
		ClosingMoney:    pricing.Round2(s.Money),
		Reputation:      s.Reputation,
	}
	if s.daily.customersServed > 0 {
		served := float64(s.daily.customersServed)
		summary.AvgQuality = s.daily.qualitySum / served
		summary.AvgSatisfaction = s.daily.satisfactionSum / served
		summary.ReturningRate = float64(s.daily.returningServed) / served
	}
	return summary
}

// nextOpening finds the next time the doors open: today's opening hour if
// it is still ahead, otherwise tomorrow's.
func (s *Simulator) nextOpening(t time.Time) time.Time {
	opening := time.Date(t.Year(), t.Month(), t.Day(), s.Config.OpeningHour, 0, 0, 0, t.Location())
	if !t.Before(opening) {
		opening = opening.AddDate(0, 0, 1)
	}
	return opening
}

func (s *Simulator) snapshot() *models.SessionSnapshot {
	name := s.Config.SessionName
	if name == "" {
		name = "default"
	}
	return &models.SessionSnapshot{
		Name:       name,
		Day:        s.Day,
		Clock:      s.CurrentTime,
		Money:      s.Money,
		Reputation: s.Reputation,
		Equipment:  s.Equipment,
		Memory:     s.Memory,
		Customers:  s.Customers,
		SavedAt:    time.Now().UTC(),
	}
}

func (s *Simulator) saveSession() {
	snapshot := s.snapshot()
	if err := s.Sessions.Save(context.Background(), snapshot); err != nil {
		log.Printf("Error saving session %q: %v", snapshot.Name, err)
		return
	}
	log.Printf("Session %q saved through day %d", snapshot.Name, snapshot.Day)
}
