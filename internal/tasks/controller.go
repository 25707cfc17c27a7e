package tasks

// Controller is what a front end talks to: the store plus the current
// filter.
type Controller struct {
	store  *Store
	filter Filter
}

func NewController(store *Store, filter Filter) *Controller {
	return &Controller{store: store, filter: filter}
}

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) AddTask(text string) (Task, bool, error) { return c.store.Add(text) }

func (c *Controller) ToggleTask(id string) (bool, error) { return c.store.Toggle(id) }

func (c *Controller) DeleteTask(id string) (bool, error) { return c.store.Delete(id) }

func (c *Controller) ClearCompleted() (int, error) { return c.store.ClearCompleted() }

func (c *Controller) SetFilter(f Filter) { c.filter = f }

func (c *Controller) Filter() Filter { return c.filter }

func (c *Controller) CurrentView() []Task {
	return ComputeView(c.store.Tasks(), c.filter)
}

func (c *Controller) CurrentStats() Stats {
	return ComputeStats(c.store.Tasks())
}
