package core

import (
	"github.com/mkraev/huddle/internal/domain"
)

// Presence events are computed from already-committed membership changes,
// while the Hub still holds the index lock, so every count in a welcome or
// bye reflects the state the change produced and nothing newer.

func welcomeDelivery(name string, count int, others []Sender) Delivery {
	return Delivery{
		Targets: others,
		Event:   WelcomeEvent{Type: EventWelcome, Name: name, Count: count},
	}
}

func byeDelivery(name string, count int, remaining []Sender) Delivery {
	return Delivery{
		Targets: remaining,
		Event:   ByeEvent{Type: EventBye, Name: name, Count: count},
	}
}

func roomChangeDelivery(rooms []domain.RoomID, everyone []Sender) Delivery {
	return Delivery{
		Targets: everyone,
		Event:   RoomChangeEvent{Type: EventRoomChange, Rooms: rooms},
	}
}

func messageDelivery(text, name string, others []Sender) Delivery {
	return Delivery{
		Targets: others,
		Event:   MessageEvent{Type: EventNewMessage, Message: text, Name: name},
	}
}
