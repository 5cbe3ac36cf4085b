package models

import (
	"container/heap"
	"sync"
	"time"
)

const (
	EventCustomerArrival   = "CustomerArrival"
	EventPlaceOrder        = "PlaceOrder"
	EventBrewDrink         = "BrewDrink"
	EventServeCustomer     = "ServeCustomer"
	EventCustomerComment   = "CustomerComment"
	EventEquipmentUpgrade  = "EquipmentUpgrade"
	EventAddNewCustomer    = "AddNewCustomer"
	EventCafeOpen          = "CafeOpen"
	EventCafeClose         = "CafeClose"
	EventDaySummary        = "DaySummary"
	EventSessionCheckpoint = "SessionCheckpoint"
)

// Event is one scheduled simulation step.
type Event struct {
	Time time.Time
	Type string
	Data interface{}

	seq uint64 // enqueue order, breaks same-minute ties
}

// EventMessage is a serialized event bound for an output topic.
type EventMessage struct {
	Topic   string
	Message []byte
}

// EventQueue orders events by time. Events scheduled for the same minute
// come out in the order they went in, which keeps runs with the same seed
// byte-for-byte reproducible.
type EventQueue struct {
	mutex   sync.Mutex
	events  eventHeap
	nextSeq uint64
}

type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time.Equal(h[j].Time) {
		return h[i].seq < h[j].seq
	}
	return h[i].Time.Before(h[j].Time)
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make(eventHeap, 0)}
}

// Enqueue schedules an event.
func (eq *EventQueue) Enqueue(event *Event) {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	event.seq = eq.nextSeq
	eq.nextSeq++
	heap.Push(&eq.events, event)
}

// Dequeue removes and returns the earliest event, or nil when empty.
func (eq *EventQueue) Dequeue() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop(&eq.events).(*Event)
}

// Peek returns the earliest event without removing it, or nil when empty.
func (eq *EventQueue) Peek() *Event {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

// IsEmpty reports whether the queue holds no events.
func (eq *EventQueue) IsEmpty() bool {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events) == 0
}

// Len returns the number of queued events.
func (eq *EventQueue) Len() int {
	eq.mutex.Lock()
	defer eq.mutex.Unlock()
	return len(eq.events)
}
