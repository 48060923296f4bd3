package console

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"catalog-admin/internal/model"
)

const noProducts = "No products found"

func (c *Console) renderView() {
	if banner := c.sess.Banner(); banner != "" {
		fmt.Fprintf(c.out, "! %s\n", banner)
	}

	f := c.sess.Filter()
	if f.Title != "" {
		fmt.Fprintf(c.out, "Search: %s\n", f.Title)
	}
	if labels := f.Applied(); len(labels) > 0 {
		fmt.Fprintf(c.out, "Filters: %s\n", strings.Join(labels, ", "))
	}

	view := c.sess.CurrentView()
	if len(view.Rows) == 0 {
		fmt.Fprintln(c.out, noProducts)
		fmt.Fprintf(c.out, "Total products: %d\n", view.TotalCount)
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "No.\tTitle\tPrice\tCategory")
	for _, p := range view.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, truncate(p.Title, 48), formatPrice(p), p.Category)
	}
	tw.Flush()

	fmt.Fprintf(c.out, "Total products: %d\n", view.TotalCount)

	nav := fmt.Sprintf("Page %d of %d", view.Page, view.TotalPages)
	if view.HasPrevious() {
		nav += "  [prev]"
	}
	if view.HasNext() {
		nav += "  [next]"
	}
	fmt.Fprintln(c.out, nav)
}

func (c *Console) renderDetail() {
	if err := c.sess.DetailError(); err != nil {
		fmt.Fprintln(c.out, "Product Not Found")
		fmt.Fprintln(c.out, err.Error())
		return
	}

	p := c.sess.SelectedProduct()
	if p == nil {
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	fmt.Fprintf(tw, "Price:\t%s\n", formatPrice(*p))
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Rating:\t%s (%d reviews)\n", strconv.FormatFloat(p.Rating.Rate, 'f', -1, 64), p.Rating.Count)
	image := p.Image
	if !p.HasImage() {
		image = "-"
	}
	fmt.Fprintf(tw, "Image:\t%s\n", image)
	tw.Flush()
}

func (c *Console) renderEditor() {
	ed := c.sess.Editor()
	if ed == nil {
		return
	}

	form := ed.Form()
	fmt.Fprintln(c.out, "New product")
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  title\t%s\n", form.Title)
	fmt.Fprintf(tw, "  price\t%s\n", form.Price)
	fmt.Fprintf(tw, "  category\t%s\n", form.Category)
	fmt.Fprintf(tw, "  description\t%s\n", form.Description)
	fmt.Fprintf(tw, "  rate\t%s\n", form.Rate)
	fmt.Fprintf(tw, "  count\t%s\n", form.Count)
	fmt.Fprintf(tw, "  image\t%s\n", ed.Preview())
	tw.Flush()

	if msg := ed.Message(); msg != "" {
		fmt.Fprintln(c.out, msg)
	}
}

func (c *Console) renderHelp() {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		cmd := c.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.usage, cmd.help)
	}
	tw.Flush()
}

func formatPrice(p model.Product) string {
	return "$" + p.Price.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
