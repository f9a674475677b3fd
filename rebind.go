package motion

import (
	"fmt"
)

// Rebind makes field drive ch. Only the domain and scale of ch are computed
// again. A running animation stops where it is and the snapshot is recomputed
// at the time currently shown. On error, the previous binding is kept.
func (s *Scatter) Rebind(ch Channel, field string) error {
	if !ch.valid() {
		return fmt.Errorf("%w: %d", ErrChannel, int(ch))
	}
	prev := s.bindings[ch]
	if err := s.bind(ch, field); err != nil {
		s.logger.Warn("rebind rejected", "channel", ch, "field", field, "err", err)
		return err
	}
	if err := s.rescale(ch); err != nil {
		s.bindings[ch] = prev
		s.registry.restore(ch, prev.Accessor)
		s.logger.Warn("rebind rejected", "channel", ch, "field", field, "err", err)
		return err
	}
	s.interrupt("rebind")
	s.display(s.Time())
	s.logger.Info("channel rebound", "channel", ch, "field", field, "domain", s.bindings[ch].Domain())
	return nil
}

// SetFamily changes the scale family of ch. The current domain is carried
// over: a lower bound sitting at the default minimum of the previous family
// moves to the default minimum of the new one.
func (s *Scatter) SetFamily(ch Channel, name string) error {
	fam, err := ParseFamily(name)
	if err != nil {
		s.logger.Warn("scale change rejected", "channel", ch, "family", name, "err", err)
		return err
	}
	if !ch.valid() {
		return fmt.Errorf("%w: %d", ErrChannel, int(ch))
	}
	if ch == Key {
		return fmt.Errorf("%s: %w", ch, ErrNoScale)
	}
	b := s.bindings[ch]
	if b.Accessor.Kind == KindAttr && b.Bound() && fam != Ordinal {
		err := fmt.Errorf("%w: %s bound to categories needs an %s scale", ErrFieldKind, ch, Ordinal)
		s.logger.Warn("scale change rejected", "channel", ch, "family", fam, "err", err)
		return err
	}
	if fam == b.Family {
		return nil
	}
	next := b
	next.Family = fam
	if b.Bound() {
		next, err = s.reframe(b, fam)
		if err != nil {
			s.logger.Warn("scale change rejected", "channel", ch, "family", fam, "err", err)
			return err
		}
	}
	if b.Accessor.Kind != KindAttr {
		s.families[ch] = fam
	}
	s.bindings[ch] = next
	s.interrupt("scale")
	s.display(s.Time())
	s.logger.Info("scale changed", "channel", ch, "from", b.Family, "to", fam, "domain", next.Domain())
	return nil
}

// reframe moves the base domain of b to fam. Nice rounding is applied on the
// new scaler only so that going back to the previous family gives back the
// previous domain.
func (s *Scatter) reframe(b Binding, fam Family) (Binding, error) {
	next := b
	next.Family = fam
	if fam == Ordinal || b.Family == Ordinal || b.Scaler == nil || b.Base.Undefined() {
		return s.buildScaler(next)
	}
	dom := Reframe(b.Base, b.Family, fam)
	return s.scaleFrom(next, dom, b.Scaler.Range())
}

// ToggleZoom switches a positional channel between a domain anchored at the
// default minimum of its family and a domain starting at the data minimum.
func (s *Scatter) ToggleZoom(ch Channel) error {
	if !ch.Positional() {
		return fmt.Errorf("%s: %w", ch, ErrNoScale)
	}
	b := s.bindings[ch]
	if !b.Bound() {
		return nil
	}
	next := b
	next.Zoomed = !b.Zoomed
	next, err := s.buildScaler(next)
	if err != nil {
		s.logger.Warn("zoom rejected", "channel", ch, "err", err)
		return err
	}
	s.bindings[ch] = next
	s.interrupt("zoom")
	s.display(s.Time())
	s.logger.Info("zoom toggled", "channel", ch, "zoomed", next.Zoomed, "domain", next.Domain())
	return nil
}

func (s *Scatter) SetAggregate(name string) error {
	a, err := ParseAggregate(name)
	if err != nil {
		s.logger.Warn("aggregate rejected", "aggregate", name, "err", err)
		return err
	}
	s.aggr = a
	s.interrupt("aggregate")
	s.logger.Info("aggregate changed", "aggregate", a)
	return nil
}

func (s *Scatter) SetWhisker(k float64) error {
	if k <= 0 {
		return fmt.Errorf("%g: whisker must be positive", k)
	}
	s.whisker = k
	s.interrupt("whisker")
	s.display(s.Time())
	return nil
}

// Resize changes the size of the chart. Only the ranges of the positional
// scales and of the time scale follow; domains and the animation are kept.
func (s *Scatter) Resize(width, height float64) error {
	if width-s.Padding.Horizontal() <= 0 || height-s.Padding.Vertical() <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrGeometry, width, height)
	}
	s.Width, s.Height = width, height
	for _, ch := range tracked {
		b := &s.bindings[ch]
		if b.Scaler != nil {
			b.Scaler = WithRange(b.Scaler, s.rangeOf(ch))
		}
	}
	s.timeScale = WithRange(s.timeScale, s.rangeOf(X))
	s.logger.Debug("chart resized", "width", width, "height", height)
	return nil
}
