package service

import (
	"context"
	"sort"

	"github.com/vietanh2810/garage-api/internal/domain"
	"github.com/vietanh2810/garage-api/internal/repository"
)

// The fakes below mirror the repository layer's guarded updates in memory, so
// service tests exercise the same rejection paths without a database.

type inventoryKey struct {
	teamID uint
	partID uint
}

type fakeCatalogRepo struct {
	parts  map[uint]domain.Part
	nextID uint
}

func newFakeCatalogRepo(parts ...domain.Part) *fakeCatalogRepo {
	f := &fakeCatalogRepo{parts: make(map[uint]domain.Part), nextID: 1}
	for _, p := range parts {
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
		f.parts[p.ID] = p
	}

	return f
}

func (f *fakeCatalogRepo) Create(_ context.Context, part domain.Part) (domain.Part, error) {
	part.ID = f.nextID
	f.nextID++
	f.parts[part.ID] = part

	return part, nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, partID uint) (domain.Part, error) {
	part, ok := f.parts[partID]
	if !ok {
		return domain.Part{}, repository.ErrPartNotFound
	}

	return part, nil
}

func (f *fakeCatalogRepo) GetAll(_ context.Context) ([]domain.Part, error) {
	ids := make([]uint, 0, len(f.parts))
	for id := range f.parts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]domain.Part, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, f.parts[id])
	}

	return parts, nil
}

func (f *fakeCatalogRepo) Update(_ context.Context, part domain.Part) (domain.Part, error) {
	existing, ok := f.parts[part.ID]
	if !ok {
		return domain.Part{}, repository.ErrPartNotFound
	}

	existing.Price = part.Price
	existing.Power = part.Power
	existing.Aero = part.Aero
	existing.Maneuver = part.Maneuver
	f.parts[part.ID] = existing

	return existing, nil
}

func (f *fakeCatalogRepo) Restock(_ context.Context, partID uint, quantity int) (domain.Part, error) {
	part, ok := f.parts[partID]
	if !ok {
		return domain.Part{}, repository.ErrPartNotFound
	}

	part.StoreStock += quantity
	f.parts[partID] = part

	return part, nil
}

func (f *fakeCatalogRepo) Delete(_ context.Context, partID uint) error {
	if _, ok := f.parts[partID]; !ok {
		return repository.ErrPartNotFound
	}
	delete(f.parts, partID)

	return nil
}

type fakeLedgerRepo struct {
	teams         map[uint]domain.Team
	sponsors      map[uint]domain.Sponsor
	contributions []domain.Contribution
	carNames      map[uint][]string
	nextID        uint
}

func newFakeLedgerRepo(teams ...domain.Team) *fakeLedgerRepo {
	f := &fakeLedgerRepo{
		teams:    make(map[uint]domain.Team),
		sponsors: make(map[uint]domain.Sponsor),
		carNames: make(map[uint][]string),
		nextID:   1,
	}
	for _, team := range teams {
		if team.ID >= f.nextID {
			f.nextID = team.ID + 1
		}
		f.teams[team.ID] = team
	}

	return f
}

func (f *fakeLedgerRepo) CreateTeam(_ context.Context, team domain.Team, carNames []string) (domain.Team, error) {
	team.ID = f.nextID
	f.nextID++
	f.teams[team.ID] = team
	f.carNames[team.ID] = carNames

	return team, nil
}

func (f *fakeLedgerRepo) GetTeam(_ context.Context, teamID uint) (domain.Team, error) {
	team, ok := f.teams[teamID]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	return team, nil
}

func (f *fakeLedgerRepo) CreateSponsor(_ context.Context, sponsor domain.Sponsor) (domain.Sponsor, error) {
	sponsor.ID = f.nextID
	f.nextID++
	f.sponsors[sponsor.ID] = sponsor

	return sponsor, nil
}

func (f *fakeLedgerRepo) ApplyContribution(_ context.Context, contribution domain.Contribution) (domain.Team, error) {
	if _, ok := f.sponsors[contribution.SponsorID]; !ok {
		return domain.Team{}, repository.ErrSponsorNotFound
	}

	team, ok := f.teams[contribution.TeamID]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}

	team.TotalBudget += contribution.Amount
	f.teams[team.ID] = team

	contribution.ID = f.nextID
	f.nextID++
	f.contributions = append(f.contributions, contribution)

	return team, nil
}

func (f *fakeLedgerRepo) GetContributions(_ context.Context, teamID uint) ([]domain.Contribution, error) {
	var out []domain.Contribution
	for _, c := range f.contributions {
		if c.TeamID == teamID {
			out = append(out, c)
		}
	}

	return out, nil
}

// fakePurchaseRepo executes purchases against the shared catalog and ledger
// fakes the same way the database transaction does: all checks re-run, all
// effects applied together or not at all.
type fakePurchaseRepo struct {
	catalog   *fakeCatalogRepo
	ledger    *fakeLedgerRepo
	inventory map[inventoryKey]*domain.InventoryEntry
	records   []domain.PurchaseRecord
}

func newFakePurchaseRepo(catalog *fakeCatalogRepo, ledger *fakeLedgerRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{
		catalog:   catalog,
		ledger:    ledger,
		inventory: make(map[inventoryKey]*domain.InventoryEntry),
	}
}

func (f *fakePurchaseRepo) Execute(_ context.Context, teamID, partID, userID uint) (domain.PurchaseResult, error) {
	part, ok := f.catalog.parts[partID]
	if !ok {
		return domain.PurchaseResult{}, repository.ErrPartNotFound
	}
	if part.StoreStock <= 0 {
		return domain.PurchaseResult{}, repository.ErrOutOfStock
	}

	team, ok := f.ledger.teams[teamID]
	if !ok {
		return domain.PurchaseResult{}, repository.ErrTeamNotFound
	}
	if team.Available() < part.Price {
		return domain.PurchaseResult{}, repository.ErrInsufficientFunds
	}

	part.StoreStock--
	f.catalog.parts[partID] = part

	team.TotalSpent += part.Price
	f.ledger.teams[teamID] = team

	key := inventoryKey{teamID: teamID, partID: partID}
	entry, ok := f.inventory[key]
	if !ok {
		entry = &domain.InventoryEntry{TeamID: teamID, PartID: partID}
		f.inventory[key] = entry
	}
	entry.QuantityOwned++

	f.records = append(f.records, domain.PurchaseRecord{
		ID:        uint(len(f.records) + 1),
		TeamID:    teamID,
		PartID:    partID,
		UserID:    userID,
		UnitPrice: part.Price,
	})

	return domain.PurchaseResult{
		TeamID:          teamID,
		PartID:          partID,
		AvailableBudget: team.Available(),
		StoreStock:      part.StoreStock,
	}, nil
}

func (f *fakePurchaseRepo) GetTeamPurchases(_ context.Context, teamID uint) ([]domain.PurchaseRecord, error) {
	var out []domain.PurchaseRecord
	for _, r := range f.records {
		if r.TeamID == teamID {
			out = append(out, r)
		}
	}

	return out, nil
}

type fakeAssemblyRepo struct {
	cars      map[uint]domain.Car
	configs   map[uint]domain.Configuration
	inventory map[inventoryKey]*domain.InventoryEntry
}

func newFakeAssemblyRepo(cars ...domain.Car) *fakeAssemblyRepo {
	f := &fakeAssemblyRepo{
		cars:      make(map[uint]domain.Car),
		configs:   make(map[uint]domain.Configuration),
		inventory: make(map[inventoryKey]*domain.InventoryEntry),
	}
	for _, car := range cars {
		f.cars[car.ID] = car
		f.configs[car.ID] = domain.Configuration{}
	}

	return f
}

func (f *fakeAssemblyRepo) setStock(teamID, partID uint, owned, installed int) {
	f.inventory[inventoryKey{teamID: teamID, partID: partID}] = &domain.InventoryEntry{
		TeamID:            teamID,
		PartID:            partID,
		QuantityOwned:     owned,
		QuantityInstalled: installed,
	}
}

func (f *fakeAssemblyRepo) entry(teamID, partID uint) *domain.InventoryEntry {
	key := inventoryKey{teamID: teamID, partID: partID}
	e, ok := f.inventory[key]
	if !ok {
		e = &domain.InventoryEntry{TeamID: teamID, PartID: partID}
		f.inventory[key] = e
	}

	return e
}

func (f *fakeAssemblyRepo) GetCar(_ context.Context, carID uint) (domain.Car, error) {
	car, ok := f.cars[carID]
	if !ok {
		return domain.Car{}, repository.ErrCarNotFound
	}

	return car, nil
}

func (f *fakeAssemblyRepo) GetTeamCars(_ context.Context, teamID uint) ([]domain.Car, error) {
	var out []domain.Car
	for _, car := range f.cars {
		if car.TeamID == teamID {
			out = append(out, car)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (f *fakeAssemblyRepo) GetConfiguration(_ context.Context, carID uint) (domain.Configuration, error) {
	configuration := domain.Configuration{}
	for category, summary := range f.configs[carID] {
		configuration[category] = summary
	}

	return configuration, nil
}

func (f *fakeAssemblyRepo) Install(_ context.Context, carID, teamID uint, part domain.Part) error {
	if _, occupied := f.configs[carID][part.Category]; occupied {
		return repository.ErrCategoryOccupied
	}

	entry := f.entry(teamID, part.ID)
	if entry.QuantityAvailable() <= 0 {
		return repository.ErrInsufficientStock
	}
	entry.QuantityInstalled++

	f.configs[carID][part.Category] = domain.PartSummary{
		PartID:   part.ID,
		Category: part.Category,
		Power:    part.Power,
		Aero:     part.Aero,
		Maneuver: part.Maneuver,
	}

	return nil
}

func (f *fakeAssemblyRepo) Replace(_ context.Context, carID, teamID uint, oldPart, newPart domain.Part) error {
	installed, ok := f.configs[carID][oldPart.Category]
	if !ok || installed.PartID != oldPart.ID {
		return repository.ErrPartNotInstalled
	}

	newEntry := f.entry(teamID, newPart.ID)
	if newEntry.QuantityAvailable() <= 0 {
		return repository.ErrInsufficientStock
	}
	newEntry.QuantityInstalled++
	f.entry(teamID, oldPart.ID).QuantityInstalled--

	f.configs[carID][newPart.Category] = domain.PartSummary{
		PartID:   newPart.ID,
		Category: newPart.Category,
		Power:    newPart.Power,
		Aero:     newPart.Aero,
		Maneuver: newPart.Maneuver,
	}

	return nil
}

func (f *fakeAssemblyRepo) Uninstall(_ context.Context, carID, teamID uint, part domain.Part) error {
	installed, ok := f.configs[carID][part.Category]
	if !ok || installed.PartID != part.ID {
		return repository.ErrPartNotInstalled
	}

	delete(f.configs[carID], part.Category)
	f.entry(teamID, part.ID).QuantityInstalled--

	return nil
}

func (f *fakeAssemblyRepo) GetReadyCars(_ context.Context) ([]domain.Car, []domain.Configuration, error) {
	ids := make([]uint, 0, len(f.cars))
	for id := range f.cars {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var cars []domain.Car
	var configurations []domain.Configuration
	for _, id := range ids {
		if len(f.configs[id]) != len(domain.Categories()) {
			continue
		}
		cars = append(cars, f.cars[id])
		configurations = append(configurations, f.configs[id])
	}

	return cars, configurations, nil
}

type fakeInventoryRepo struct {
	assembly *fakeAssemblyRepo
	catalog  *fakeCatalogRepo
}

func (f *fakeInventoryRepo) GetTeamInventory(_ context.Context, teamID uint) ([]domain.PartWithStock, error) {
	var out []domain.PartWithStock
	for key, entry := range f.assembly.inventory {
		if key.teamID != teamID || entry.QuantityOwned <= 0 {
			continue
		}
		out = append(out, domain.PartWithStock{
			Part:              f.catalog.parts[key.partID],
			QuantityOwned:     entry.QuantityOwned,
			QuantityInstalled: entry.QuantityInstalled,
			QuantityAvailable: entry.QuantityAvailable(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Part.ID < out[j].Part.ID })

	return out, nil
}

func (f *fakeInventoryRepo) GetEntry(_ context.Context, teamID, partID uint) (domain.InventoryEntry, error) {
	entry, ok := f.assembly.inventory[inventoryKey{teamID: teamID, partID: partID}]
	if !ok {
		return domain.InventoryEntry{TeamID: teamID, PartID: partID}, nil
	}

	return *entry, nil
}

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user

	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}
