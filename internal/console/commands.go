package console

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"catalog-admin/internal/editor"
	"catalog-admin/internal/model"
	"catalog-admin/internal/query"
)

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, args string)
	quit  bool
}

// routes builds the command table.
func (c *Console) routes() map[string]command {
	return map[string]command{
		"list":       {usage: "list", help: "show the current page", run: c.list},
		"search":     {usage: "search <text>", help: "filter by title, empty to clear", run: c.search},
		"price":      {usage: "price [<min> - <max>]", help: "filter by price range, empty to clear", run: c.price},
		"category":   {usage: "category [<name>]", help: "filter by category, empty to clear", run: c.category},
		"clear":      {usage: "clear", help: "remove all filters", run: c.clear},
		"page":       {usage: "page <n>", help: "go to page n", run: c.page},
		"next":       {usage: "next", help: "go to the next page", run: c.next},
		"prev":       {usage: "prev", help: "go to the previous page", run: c.prev},
		"show":       {usage: "show <id>", help: "show product details", run: c.show},
		"close":      {usage: "close", help: "close product details", run: c.closeDetail},
		"categories": {usage: "categories", help: "list categories and price presets", run: c.categories},
		"reload":     {usage: "reload", help: "fetch the products again", run: c.reloadCmd},
		"add":        {usage: "add", help: "open the new product form", run: c.add},
		"set":        {usage: "set <field> <value>", help: "set title, price, category, description, rate or count", run: c.set},
		"image":      {usage: "image <path>", help: "upload the product image", run: c.image},
		"submit":     {usage: "submit", help: "add the product", run: c.submit},
		"cancel":     {usage: "cancel", help: "discard the new product form", run: c.cancel},
		"help":       {usage: "help", help: "show this help", run: c.help},
		"quit":       {usage: "quit", help: "exit", quit: true},
	}
}

func (c *Console) list(ctx context.Context, args string) {
	c.renderView()
}

func (c *Console) search(ctx context.Context, args string) {
	f := c.sess.Filter()
	f.Title = args
	c.sess.OnFilterChange(f)
	c.renderView()
}

func (c *Console) price(ctx context.Context, args string) {
	f := c.sess.Filter()
	f.Price = nil
	if args != "" {
		r, ok := query.ParsePriceRange(args)
		if !ok {
			fmt.Fprintf(c.out, "Ignoring price range %q; use <min> - <max>.\n", args)
		}
		f.Price = r
	}
	c.sess.OnFilterChange(f)
	c.renderView()
}

func (c *Console) category(ctx context.Context, args string) {
	f := c.sess.Filter()
	f.Category = args
	c.sess.OnFilterChange(f)
	c.renderView()
}

func (c *Console) clear(ctx context.Context, args string) {
	c.sess.ClearFilters()
	c.renderView()
}

func (c *Console) page(ctx context.Context, args string) {
	n, err := strconv.Atoi(args)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: page <n>")
		return
	}
	c.sess.OnPageChange(n)
	c.renderView()
}

func (c *Console) next(ctx context.Context, args string) {
	c.sess.NextPage()
	c.renderView()
}

func (c *Console) prev(ctx context.Context, args string) {
	c.sess.PreviousPage()
	c.renderView()
}

func (c *Console) show(ctx context.Context, args string) {
	id, err := strconv.Atoi(args)
	if err != nil {
		fmt.Fprintln(c.out, "Usage: show <id>")
		return
	}
	_ = c.sess.OnRowSelect(id)
	c.renderDetail()
}

func (c *Console) closeDetail(ctx context.Context, args string) {
	c.sess.CloseDetail()
	c.renderView()
}

func (c *Console) categories(ctx context.Context, args string) {
	names := c.sess.Categories()
	if len(names) == 0 {
		fmt.Fprintln(c.out, "No categories loaded.")
	} else {
		fmt.Fprintln(c.out, "Categories:")
		for _, name := range names {
			fmt.Fprintf(c.out, "  %s\n", name)
		}
	}
	fmt.Fprintln(c.out, "Price ranges:")
	for _, preset := range query.PricePresets {
		fmt.Fprintf(c.out, "  %s\n", preset)
	}
}

func (c *Console) reloadCmd(ctx context.Context, args string) {
	c.reload(ctx)
}

func (c *Console) reload(ctx context.Context) {
	fmt.Fprintln(c.out, "Loading products...")
	if err := c.sess.Refresh(ctx); err != nil && !errors.Is(err, model.ErrRefreshSuperseded) {
		c.logger.Debug().Err(err).Msg("reload failed")
	}
	c.renderView()
}

func (c *Console) add(ctx context.Context, args string) {
	c.sess.NewEditor()
	c.renderEditor()
}

func (c *Console) set(ctx context.Context, args string) {
	ed, ok := c.activeEditor()
	if !ok {
		return
	}

	field, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)

	setters := map[string]func(string){
		"title":       ed.SetTitle,
		"price":       ed.SetPrice,
		"category":    ed.SetCategory,
		"description": ed.SetDescription,
		"rate":        ed.SetRate,
		"count":       ed.SetCount,
	}
	setter, ok := setters[strings.ToLower(field)]
	if !ok {
		fields := make([]string, 0, len(setters))
		for name := range setters {
			fields = append(fields, name)
		}
		sort.Strings(fields)
		fmt.Fprintf(c.out, "Usage: set <field> <value> (fields: %s)\n", strings.Join(fields, ", "))
		return
	}

	setter(value)
	c.renderEditor()
}

func (c *Console) image(ctx context.Context, args string) {
	ed, ok := c.activeEditor()
	if !ok {
		return
	}
	if args == "" {
		fmt.Fprintln(c.out, "Usage: image <path>")
		return
	}

	file, err := os.Open(args)
	if err != nil {
		ed.ClearImage()
		fmt.Fprintf(c.out, "Cannot open %s: %v\n", args, err)
		c.renderEditor()
		return
	}
	defer file.Close()

	fmt.Fprintln(c.out, "Uploading image...")
	if err := c.sess.UploadImage(ctx, ed, file.Name(), file); err != nil {
		fmt.Fprintln(c.out, model.ErrUploadFailure.Message)
	}
	c.renderEditor()
}

func (c *Console) submit(ctx context.Context, args string) {
	ed, ok := c.activeEditor()
	if !ok {
		return
	}

	if _, err := c.sess.OnSubmitNewProduct(ed); err != nil {
		c.renderEditor()
		return
	}

	fmt.Fprintln(c.out, ed.Message())
	c.sess.CancelEditor()
	c.renderView()
}

func (c *Console) cancel(ctx context.Context, args string) {
	if c.sess.Editor() == nil {
		fmt.Fprintln(c.out, "No product form open.")
		return
	}
	c.sess.CancelEditor()
	fmt.Fprintln(c.out, "New product discarded.")
}

func (c *Console) help(ctx context.Context, args string) {
	c.renderHelp()
}

func (c *Console) activeEditor() (*editor.Session, bool) {
	ed := c.sess.Editor()
	if ed == nil {
		fmt.Fprintln(c.out, "No product form open. Type 'add' first.")
		return nil, false
	}
	return ed, true
}
