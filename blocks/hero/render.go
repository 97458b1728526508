package hero

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/beevik/etree"

	"cblocks/collection"
	"cblocks/common"
	"cblocks/css"
	"cblocks/render"
)

func (b *Block) Save(attrs collection.Fields, ctx *render.Context) *etree.Element {
	root := b.root(attrs, ctx, common.RenderModeStatic)
	wrapper := render.Child(root, "div", "counseling-above-fold-wrapper")

	content := b.left(wrapper, attrs, ctx)
	cards := render.Child(content, "div", "counseling-above-fold-cards")
	for _, card := range attrs.List(ServiceCards) {
		var unit *etree.Element
		if link := card.String("link", ""); render.SafeURL(link) {
			unit = render.Unit(cards, "a", ServiceCards, card, "counseling-service-card")
			unit.CreateAttr("href", link)
		} else {
			unit = render.Unit(cards, "div", ServiceCards, card, "counseling-service-card")
		}
		b.serviceCard(unit, attrs, card, ctx)
		arrow := render.Text(unit, "div", "counseling-service-arrow", "→")
		arrow.CreateAttr("aria-hidden", "true")
	}

	if person := b.person(wrapper, attrs, ctx); person != nil {
		alt := attrs.Map(PersonImage).String("alt", "")
		if alt == "" {
			alt = "Counselor"
		}
		person.CreateAttr("role", "img")
		person.CreateAttr("aria-label", alt)
	}

	benefits := b.right(wrapper, attrs, ctx)
	for _, card := range attrs.List(BenefitCards) {
		unit := render.Unit(benefits, "div", BenefitCards, card, "counseling-benefit-card")
		b.benefitText(unit, attrs, card, ctx)
	}
	return root
}

func (b *Block) Edit(attrs collection.Fields, _ *render.EditorState, ctx *render.Context) *etree.Element {
	root := b.root(attrs, ctx, common.RenderModeEditor)
	b.settings(root, attrs, ctx)
	wrapper := render.Child(root, "div", "counseling-above-fold-wrapper")

	content := b.left(wrapper, attrs, ctx)
	services := attrs.List(ServiceCards)
	cards := render.Child(content, "div", "counseling-above-fold-cards")
	for i, card := range services {
		unit := render.Unit(cards, "div", ServiceCards, card, "counseling-service-card")
		b.serviceCard(unit, attrs, card, ctx)
		render.Text(unit, "div", "counseling-service-arrow", "→")

		controls := render.Child(unit, "div", "card-controls")
		render.Text(controls, "h4", "", ctx.Labels.ItemHeading("service card", i+1))
		render.Field(controls, "icon", "Icon", card.String("icon", ""))
		render.Field(controls, "title", "Title", card.String("title", ""))
		render.Field(controls, "description", "Description", card.String("description", ""))
		render.Field(controls, "link", "Link URL", card.String("link", ""))
		render.MoveButtons(controls, ActionMoveServiceCard, ServiceCards, i, len(services))
		render.Button(controls, render.Control{
			Action:   ActionRemoveServiceCard,
			Label:    "Remove Card",
			List:     ServiceCards,
			Index:    i,
			Disabled: len(services) <= b.cfg.MinServiceCards,
		})
	}
	if len(services) < b.cfg.MaxServiceCards {
		render.Button(content, render.Control{Action: ActionAddServiceCard, Label: "Add Service Card", List: ServiceCards, Index: -1})
	}
	counter := render.Text(content, "span", "capacity-counter", ctx.Labels.Capacity(len(services), b.cfg.MaxServiceCards))
	counter.CreateAttr("data-list", ServiceCards)

	b.person(wrapper, attrs, ctx)

	benefits := b.right(wrapper, attrs, ctx)
	list := attrs.List(BenefitCards)
	for i, card := range list {
		unit := render.Unit(benefits, "div", BenefitCards, card, "counseling-benefit-card")
		b.benefitText(unit, attrs, card, ctx)

		controls := render.Child(unit, "div", "card-controls")
		render.Field(controls, "text", "Text", card.String("text", ""))
		render.MoveButtons(controls, ActionMoveBenefitCard, BenefitCards, i, len(list))
		render.Button(controls, render.Control{
			Action:   ActionRemoveBenefitCard,
			Label:    "Remove Benefit",
			List:     BenefitCards,
			Index:    i,
			Disabled: len(list) <= b.cfg.MinBenefitCards,
		})
	}
	render.Button(wrapper, render.Control{Action: ActionAddBenefitCard, Label: "Add Benefit", List: BenefitCards, Index: -1})
	return root
}

func (b *Block) root(attrs collection.Fields, ctx *render.Context, mode common.RenderMode) *etree.Element {
	root := render.Root(ctx, mode)
	if attrs.Bool("fullHeight") {
		root.CreateAttr("class", root.SelectAttrValue("class", "")+" is-full-height")
	}
	if z := attrs.String("blockZIndex", ""); validZIndex(z) {
		s := ctx.Style()
		s.Set("z-index", z)
		render.SetStyle(root, s)
	}
	return root
}

func (b *Block) left(wrapper *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	left := render.Child(wrapper, "div", "counseling-above-fold-left")
	s := ctx.Style()
	s.Set("background-color", attrs.String("leftBackgroundColor", ""))
	render.SetStyle(left, s)

	content := render.Child(left, "div", "counseling-above-fold-content")
	heading := render.RichTextElement(content, "h1", "counseling-above-fold-heading", attrs.String("heading", ""))
	render.SetStyle(heading, color(ctx, attrs, "headingColor"))
	sub := render.RichTextElement(content, "p", "counseling-above-fold-subheading", attrs.String("subheading", ""))
	render.SetStyle(sub, color(ctx, attrs, "subheadingColor"))
	return content
}

func (b *Block) serviceCard(unit *etree.Element, attrs collection.Fields, card *collection.Entry, ctx *render.Context) {
	s := ctx.Style()
	s.Set("background-color", attrs.String("cardBackgroundColor", ""))
	render.SetStyle(unit, s)

	icon := render.Child(unit, "div", "counseling-service-icon")
	s = ctx.Style()
	s.Set("background-color", attrs.String("cardIconBackgroundColor", ""))
	s.Set("color", attrs.String("cardIconColor", ""))
	render.SetStyle(icon, s)
	icon.CreateElement("span").SetText(card.String("icon", ""))

	content := render.Child(unit, "div", "counseling-service-content")
	title := content.CreateElement("h3")
	title.SetText(card.String("title", ""))
	render.SetStyle(title, color(ctx, attrs, "cardTitleColor"))
	desc := content.CreateElement("p")
	desc.SetText(card.String("description", ""))
	render.SetStyle(desc, color(ctx, attrs, "cardDescriptionColor"))
}

// person renders image layer, nothing is rendered without image.
func (b *Block) person(wrapper *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	u := attrs.Map(PersonImage).String("url", "")
	if u == "" || !render.SafeURL(u) {
		return nil
	}
	person := render.Child(wrapper, "div", "counseling-above-fold-person")
	s := ctx.Style()
	s.Set("background-image", fmt.Sprintf("url(%s)", u))
	s.Set("left", strconv.Itoa(clamp(attrs.Int("personImagePosition", 50), minImagePosition, maxImagePosition))+"%")
	render.SetStyle(person, s)
	return person
}

func (b *Block) right(wrapper *etree.Element, attrs collection.Fields, ctx *render.Context) *etree.Element {
	right := render.Child(wrapper, "div", "counseling-above-fold-right")
	s := ctx.Style()
	s.Set("background-color", attrs.String("rightBackgroundColor", ""))
	render.SetStyle(right, s)

	benefits := render.Child(right, "div", "counseling-above-fold-benefits")
	x := clamp(attrs.Int("benefitsHorizontalPosition", 0), -maxBenefitsShiftX, maxBenefitsShiftX)
	y := clamp(attrs.Int("benefitsVerticalPosition", 0), -maxBenefitsShiftY, maxBenefitsShiftY)
	s = ctx.Style()
	s.Set("transform", fmt.Sprintf("translate(%dpx, %dpx)", x, y))
	render.SetStyle(benefits, s)
	return benefits
}

func (b *Block) benefitText(unit *etree.Element, attrs collection.Fields, card *collection.Entry, ctx *render.Context) {
	text := render.Text(unit, "span", "counseling-benefit-text", card.String("text", ""))
	render.SetStyle(text, color(ctx, attrs, "benefitTextColor"))
}

// settings is side panel with block wide controls.
func (b *Block) settings(root *etree.Element, attrs collection.Fields, ctx *render.Context) {
	panel := render.Child(root, "div", "block-settings")

	general := render.Child(panel, "div", "settings-panel")
	render.Text(general, "h4", "", "General Settings")
	toggle := render.Field(general, "fullHeight", "Full Height", "")
	toggle.CreateAttr("type", "checkbox")
	if attrs.Bool("fullHeight") {
		toggle.CreateAttr("checked", "checked")
	}
	l := render.Child(general, "label", "components-base-control")
	l.CreateText("Block Z-Index")
	sel := l.CreateElement("select")
	sel.CreateAttr("data-field", "blockZIndex")
	current := attrs.String("blockZIndex", "")
	options := ZIndexes
	if !slices.Contains(options, current) && validZIndex(current) {
		options = append(slices.Clone(options), current)
	}
	for _, z := range options {
		opt := sel.CreateElement("option")
		opt.CreateAttr("value", z)
		if z == current {
			opt.CreateAttr("selected", "selected")
		}
		opt.SetText(z)
	}

	image := render.Child(panel, "div", "settings-panel")
	render.Text(image, "h4", "", "Person Image")
	img := attrs.Map(PersonImage)
	if img.String("url", "") == "" {
		render.Button(image, render.Control{Action: ActionSelectImage, Label: "Select Image", Index: -1})
	} else {
		render.Button(image, render.Control{Action: ActionSelectImage, Label: "Change Image", Index: -1})
		render.Button(image, render.Control{Action: ActionRemoveImage, Label: "Remove Image", Index: -1})
		pos := render.Field(image, "personImagePosition", "Image Position", strconv.Itoa(attrs.Int("personImagePosition", 50)))
		rangeInput(pos, minImagePosition, maxImagePosition)
	}

	benefits := render.Child(panel, "div", "settings-panel")
	render.Text(benefits, "h4", "", "Benefit Cards")
	x := render.Field(benefits, "benefitsHorizontalPosition", "Horizontal Position", strconv.Itoa(attrs.Int("benefitsHorizontalPosition", 0)))
	rangeInput(x, -maxBenefitsShiftX, maxBenefitsShiftX)
	y := render.Field(benefits, "benefitsVerticalPosition", "Vertical Position", strconv.Itoa(attrs.Int("benefitsVerticalPosition", 0)))
	rangeInput(y, -maxBenefitsShiftY, maxBenefitsShiftY)
}

func rangeInput(in *etree.Element, lo, hi int) {
	in.CreateAttr("type", "range")
	in.CreateAttr("min", strconv.Itoa(lo))
	in.CreateAttr("max", strconv.Itoa(hi))
}

func color(ctx *render.Context, attrs collection.Fields, field string) *css.Style {
	s := ctx.Style()
	s.Set("color", attrs.String(field, ""))
	return s
}
