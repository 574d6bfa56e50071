package tracker

// ActionType identifica cada transición del estado.
type ActionType string

const (
	ActionSelectDay        ActionType = "SELECT_DAY"
	ActionToggleCompletion ActionType = "TOGGLE_COMPLETION"
	ActionPersisted        ActionType = "PERSISTED"
	ActionAlertFired       ActionType = "ALERT_FIRED"
	ActionAlertDismissed   ActionType = "ALERT_DISMISSED"
	ActionMuteToggled      ActionType = "MUTE_TOGGLED"
	ActionLedgerLoaded     ActionType = "LEDGER_LOADED"
)

type Action interface {
	Type() ActionType
}

// SelectDay cambia el día que muestra la vista. Date en formato YYYY-MM-DD.
type SelectDay struct{ Date string }

// ToggleCompletion marca una toma como tomada. Monótono: no existe "destomar".
type ToggleCompletion struct{ Key string }

// Persisted cierra la escritura del ledger (exitosa o no) y libera el guard.
type Persisted struct{}

// AlertFired registra una alerta disparada por el watcher.
type AlertFired struct{ Alert Alert }

// AlertDismissed cierra una alerta activa. Taken indica que se cerró por "tomada".
type AlertDismissed struct {
	AlertKey string
	Taken    bool
}

type MuteToggled struct{ Muted bool }

// LedgerLoaded reemplaza las marcas con lo leído del almacenamiento.
type LedgerLoaded struct{ Completions map[string]bool }

func (SelectDay) Type() ActionType        { return ActionSelectDay }
func (ToggleCompletion) Type() ActionType { return ActionToggleCompletion }
func (Persisted) Type() ActionType        { return ActionPersisted }
func (AlertFired) Type() ActionType       { return ActionAlertFired }
func (AlertDismissed) Type() ActionType   { return ActionAlertDismissed }
func (MuteToggled) Type() ActionType      { return ActionMuteToggled }
func (LedgerLoaded) Type() ActionType     { return ActionLedgerLoaded }
