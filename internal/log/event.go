package log

// EventType enumerates all observable round events.
type EventType int

const (
	EventRoundStart EventType = iota
	EventDraw
	EventMatch
	EventInvalidMatch
	EventGraceUsed
	EventHint
	EventExplosion
	EventLaser
	EventFire
	EventBurn
	EventRicochet
	EventEcho
	EventBonus
	EventEnemyEffect
	EventCardRemoved
	EventCardsFlipped
	EventShuffle
	EventBomb
	EventHealthChange
	EventScoreChange
	EventTimeChange
	EventEnemyDefeated
	EventRoundOver
)

func (e EventType) String() string {
	switch e {
	case EventRoundStart:
		return "RoundStart"
	case EventDraw:
		return "Draw"
	case EventMatch:
		return "Match"
	case EventInvalidMatch:
		return "InvalidMatch"
	case EventGraceUsed:
		return "GraceUsed"
	case EventHint:
		return "Hint"
	case EventExplosion:
		return "Explosion"
	case EventLaser:
		return "Laser"
	case EventFire:
		return "Fire"
	case EventBurn:
		return "Burn"
	case EventRicochet:
		return "Ricochet"
	case EventEcho:
		return "Echo"
	case EventBonus:
		return "Bonus"
	case EventEnemyEffect:
		return "EnemyEffect"
	case EventCardRemoved:
		return "CardRemoved"
	case EventCardsFlipped:
		return "CardsFlipped"
	case EventShuffle:
		return "Shuffle"
	case EventBomb:
		return "Bomb"
	case EventHealthChange:
		return "HealthChange"
	case EventScoreChange:
		return "ScoreChange"
	case EventTimeChange:
		return "TimeChange"
	case EventEnemyDefeated:
		return "EnemyDefeated"
	case EventRoundOver:
		return "RoundOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a round.
type GameEvent struct {
	Seq       int       // monotonic sequence number
	Round     int       // which round (1-based)
	ElapsedMs float64   // round clock when the event happened
	Type      EventType // event type
	Card      string    // card id (if applicable)
	Details   string    // human-readable detail string
}
