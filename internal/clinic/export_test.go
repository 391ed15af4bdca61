package clinic

// SetToday pins the clock used for default dates.
func (s *Service) SetToday(fn func() Date) {
	s.today = fn
}
