package services

import (
	"context"
	"strings"

	"lrbooking/apperr"
	"lrbooking/logger"
	"lrbooking/models"
	"lrbooking/repository"
)

// knownDestinations reads the destination list as it stands before a write.
// A read failure is logged and treated as an empty list.
func (s *BookingService) knownDestinations(ctx context.Context) map[string]bool {
	known := map[string]bool{}
	if s.Options == nil {
		return known
	}
	list, err := s.Options.List(ctx, models.OptionDestinations)
	if err != nil {
		logger.FromContext(ctx, s.Logger).Warnw("read destinations failed", "error", err)
		return known
	}
	for _, d := range list {
		known[d] = true
	}
	return known
}

// remember updates option lists, autocomplete history and the
// per-destination caches after a booking was written. Failures are logged
// and never returned.
func (s *BookingService) remember(ctx context.Context, b *models.Booking, known map[string]bool) {
	log := logger.FromContext(ctx, s.Logger).With("id", b.ID)

	if s.Options != nil {
		if !known[b.Destination] {
			s.addOption(ctx, log, models.OptionDestinations, b.Destination)
		}
		for _, a := range b.Articles {
			s.addOption(ctx, log, models.OptionArticleTypes, a.ArticleType)
		}
		s.addOption(ctx, log, repository.HistoryKey(models.HistoryConsignorName), b.Consignor.Name)
		s.addOption(ctx, log, repository.HistoryKey(models.HistoryConsigneeName), b.Consignee.Name)
		s.addOption(ctx, log, repository.HistoryKey(models.HistoryConsignorMob), b.Consignor.Mobile)
		s.addOption(ctx, log, repository.HistoryKey(models.HistoryConsigneeMob), b.Consignee.Mobile)
	}

	if s.Parties != nil {
		if err := s.Parties.AddConsignee(ctx, b.Destination, b.Consignee); err != nil {
			log.Warnw("cache consignee failed", "destination", b.Destination, "error", err)
		}
		if b.Consignee.Address != "" {
			if err := s.Parties.AddAddress(ctx, b.Destination, b.Consignee.Address); err != nil {
				log.Warnw("cache address failed", "destination", b.Destination, "error", err)
			}
		}
	}
}

func (s *BookingService) addOption(ctx context.Context, log *logger.Logger, key, value string) {
	if value == "" {
		return
	}
	if err := s.Options.Add(ctx, key, value); err != nil {
		log.Warnw("add option failed", "key", key, "value", value, "error", err)
	}
}

func optionKey(key string) error {
	if key != models.OptionDestinations && key != models.OptionArticleTypes {
		return apperr.Validation("key", "unknown option list "+key)
	}
	return nil
}

// ListOptions returns the destinations or articleTypes dropdown list.
func (s *BookingService) ListOptions(ctx context.Context, key string) ([]string, error) {
	if err := optionKey(key); err != nil {
		return nil, err
	}
	return s.listOptions(ctx, key)
}

func (s *BookingService) listOptions(ctx context.Context, key string) ([]string, error) {
	if s.Options == nil {
		return []string{}, nil
	}
	list, err := s.Options.List(ctx, key)
	if err != nil {
		return nil, apperr.TransientIO("list options", err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// AddOption adds value to the list unless it is already present.
func (s *BookingService) AddOption(ctx context.Context, key, value string) error {
	if err := optionKey(key); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return apperr.Validation("value", "is required")
	}
	if s.Options == nil {
		return nil
	}
	if err := s.Options.Add(ctx, key, value); err != nil {
		return apperr.TransientIO("add option", err)
	}
	return nil
}

// History returns the autocomplete values recorded for a party field.
func (s *BookingService) History(ctx context.Context, field string) ([]string, error) {
	switch field {
	case models.HistoryConsignorName, models.HistoryConsigneeName, models.HistoryConsignorMob, models.HistoryConsigneeMob:
	default:
		return nil, apperr.Validation("field", "unknown history field "+field)
	}
	return s.listOptions(ctx, repository.HistoryKey(field))
}

func (s *BookingService) Consignees(ctx context.Context, destination string) ([]models.Party, error) {
	if s.Parties == nil {
		return []models.Party{}, nil
	}
	list, err := s.Parties.Consignees(ctx, strings.TrimSpace(destination))
	if err != nil {
		return nil, apperr.TransientIO("list consignees", err)
	}
	if list == nil {
		list = []models.Party{}
	}
	return list, nil
}

// Address returns the cached delivery address for destination, or "".
func (s *BookingService) Address(ctx context.Context, destination string) (string, error) {
	if s.Parties == nil {
		return "", nil
	}
	addr, err := s.Parties.Address(ctx, strings.TrimSpace(destination))
	if err != nil {
		return "", apperr.TransientIO("load address", err)
	}
	return addr, nil
}
