package listpage

import (
	"context"
	"log"
	"sync"

	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/debounce"
)

type Config[T any, F any] struct {
	Name     string
	Store    Lister[T]
	Schema   Schema[T, F]
	Notifier Notifier
	Messages Messages
}

type searchInput struct {
	ctx  context.Context
	text string
}

type Controller[T any, F any] struct {
	cfg  Config[T, F]
	opts options

	mu     sync.Mutex
	state  State[T, F]
	gen    uint64
	closed bool

	search *debounce.Debouncer[searchInput]
}

func New[T any, F any](cfg Config[T, F], opts ...Option) *Controller[T, F] {
	o := options{searchDelay: DefaultSearchDelay}
	for _, opt := range opts {
		opt(&o)
	}
	q := o.initial
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}

	c := &Controller[T, F]{cfg: cfg, opts: o}
	c.state.Query = q
	c.state.Modal.Form = cfg.Schema.Defaults()
	c.search = debounce.New(o.searchDelay, func(in searchInput) {
		c.mu.Lock()
		filter := c.state.Query.Filter
		c.mu.Unlock()
		_ = c.SetFilters(in.ctx, in.text, filter)
	})
	return c
}

func (c *Controller[T, F]) State() State[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Items = append([]T(nil), c.state.Items...)
	return s
}

// Load fetches the current page and replaces every row. A response that
// arrives after Close or after a newer Load started is dropped.
func (c *Controller[T, F]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.gen++
	gen := c.gen
	q := c.state.Query
	c.state.Loading = true
	c.mu.Unlock()

	page, err := c.cfg.Store.List(ctx, q)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return nil
	}
	c.state.Loading = false
	if err != nil {
		c.state.Err = err
		c.mu.Unlock()
		log.Printf("%s.Load: failed to fetch page %d: %v", c.cfg.Name, q.Page, err)
		c.notifyError(ctx, err, c.cfg.Messages.FetchFailed)
		return err
	}
	c.state.Items = page.Items
	c.state.Total = page.Total
	c.state.TotalPages = page.TotalPages
	c.state.Stale = false
	c.state.Err = nil
	c.mu.Unlock()
	return nil
}

func (c *Controller[T, F]) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.state.Query.Page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

func (c *Controller[T, F]) SetFilters(ctx context.Context, search, filter string) error {
	c.mu.Lock()
	changed := c.state.Query.Search != search || c.state.Query.Filter != filter
	c.state.Query.Search = search
	c.state.Query.Filter = filter
	if changed && c.opts.filterResetsPage {
		c.state.Query.Page = 1
	}
	c.mu.Unlock()
	return c.Load(ctx)
}

// OnSearchInput applies a search change once typing has paused.
func (c *Controller[T, F]) OnSearchInput(ctx context.Context, text string) {
	c.search.Call(searchInput{ctx: ctx, text: text})
}

func (c *Controller[T, F]) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Modal = Modal[F]{Open: true, Form: c.cfg.Schema.Defaults()}
}

func (c *Controller[T, F]) OpenEdit(row T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Modal = Modal[F]{
		Open: true,
		Key:  c.cfg.Schema.Key(row),
		Form: c.cfg.Schema.FromRow(row),
	}
}

// SetForm replaces the form values of the open modal, opening it for key
// when it is closed. An empty key means a new row.
func (c *Controller[T, F]) SetForm(key string, form F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Modal.Open = true
	c.state.Modal.Key = key
	c.state.Modal.Form = form
	c.state.Modal.Errors = nil
}

func (c *Controller[T, F]) CloseModal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Modal = Modal[F]{Form: c.cfg.Schema.Defaults()}
}

// Submit validates the modal form and sends it as a create or an update.
// Nothing is sent when validation fails.
func (c *Controller[T, F]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.Modal.Open {
		c.mu.Unlock()
		return ErrModalClosed
	}
	key := c.state.Modal.Key
	form := c.state.Modal.Form
	c.mu.Unlock()

	if verr := c.cfg.Schema.Validate(form); verr != nil {
		c.mu.Lock()
		c.state.Modal.Errors = verr.Fields
		c.mu.Unlock()
		c.notify(ctx, false, verr.Message)
		return verr
	}

	var (
		err               error
		success, fallback string
	)
	if key == "" {
		success, fallback = c.cfg.Messages.Created, c.cfg.Messages.CreateFailed
		creator, ok := c.cfg.Store.(Creator[F])
		if !ok {
			return ErrUnsupported
		}
		err = creator.Create(ctx, form)
	} else {
		success, fallback = c.cfg.Messages.Updated, c.cfg.Messages.UpdateFailed
		updater, ok := c.cfg.Store.(Updater[F])
		if !ok {
			return ErrUnsupported
		}
		err = updater.Update(ctx, key, form)
	}
	if err != nil {
		log.Printf("%s.Submit: failed to save %q: %v", c.cfg.Name, key, err)
		c.notifyError(ctx, err, fallback)
		return err
	}

	c.notify(ctx, true, success)
	c.CloseModal()
	return c.refresh(ctx)
}

// Delete removes the row identified by key once confirmer approves.
func (c *Controller[T, F]) Delete(ctx context.Context, key string, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, c.cfg.Messages.ConfirmDelete) {
		return ErrNotConfirmed
	}
	deleter, ok := c.cfg.Store.(Deleter)
	if !ok {
		return ErrUnsupported
	}
	if err := deleter.Delete(ctx, key); err != nil {
		log.Printf("%s.Delete: failed to delete %q: %v", c.cfg.Name, key, err)
		c.notifyError(ctx, err, c.cfg.Messages.DeleteFailed)
		return err
	}
	c.notify(ctx, true, c.cfg.Messages.Deleted)
	return c.refresh(ctx)
}

// Close tears the controller down. Pending searches are dropped and in-flight
// fetches no longer touch the state.
func (c *Controller[T, F]) Close() {
	c.search.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T, F]) refresh(ctx context.Context) error {
	if c.opts.skipRefetch {
		c.mu.Lock()
		c.state.Stale = true
		c.mu.Unlock()
		return nil
	}
	return c.Load(ctx)
}

func (c *Controller[T, F]) notifyError(ctx context.Context, err error, fallback string) {
	c.notify(ctx, false, services.MessageOf(err, fallback))
}

func (c *Controller[T, F]) notify(ctx context.Context, ok bool, msg string) {
	if c.cfg.Notifier == nil || msg == "" {
		return
	}
	if ok {
		c.cfg.Notifier.Success(ctx, msg)
	} else {
		c.cfg.Notifier.Error(ctx, msg)
	}
}
