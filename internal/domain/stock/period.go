package stock

import "time"

// PeriodKind période nommée pour le reporting.
type PeriodKind string

const (
	PeriodDay   PeriodKind = "DAY"
	PeriodWeek  PeriodKind = "WEEK"
	PeriodMonth PeriodKind = "MONTH"
)

// Period fenêtre temporelle à bornes incluses : End est le dernier instant
// de la période (début de la période suivante moins un tick). Les périodes
// successives pavent le temps sans trou ni recouvrement.
type Period struct {
	Start time.Time
	End   time.Time
}

// span durée inclusive de la période.
func (p Period) span() time.Duration {
	return p.End.Sub(p.Start) + time.Nanosecond
}

// Next retourne la période suivante : mêmes bornes décalées de la durée de la
// période, le nouveau Start suivant immédiatement l'ancien End.
func (p Period) Next() Period {
	d := p.span()
	return Period{Start: p.Start.Add(d), End: p.End.Add(d)}
}

// Previous retourne la période précédente, symétrique de Next.
func (p Period) Previous() Period {
	d := p.span()
	return Period{Start: p.Start.Add(-d), End: p.End.Add(-d)}
}

// Generate calcule les bornes calendaires canoniques contenant ref :
// DAY = jour civil, WEEK = semaine commençant le lundi, MONTH = mois civil.
// Un kind inconnu retombe sur DAY.
func Generate(kind PeriodKind, ref time.Time) Period {
	switch kind {
	case PeriodWeek:
		start := startOfDay(ref)
		weekday := int(ref.Weekday())
		if weekday == 0 { // dimanche
			weekday = 7
		}
		start = start.AddDate(0, 0, -(weekday - 1))
		return Period{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	case PeriodDay:
		fallthrough
	default:
		start := startOfDay(ref)
		return Period{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
