package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/osei/edushield/internal/app/models"
	"github.com/osei/edushield/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. They mirror the guarded
// transitions the SQL layer enforces (conditional updates, partial unique
// indexes) so the services see the same error surface as in production.

type fakeStudentStore struct {
	students []*models.Student
	nextID   int64
}

func (f *fakeStudentStore) CreateWithIdentifier(_ context.Context, student *models.Student, parentID *int64) error {
	f.nextID++
	student.ID = f.nextID
	student.Identifier = models.IdentifierPrefix + strconv.FormatInt(f.nextID, 10)
	if parentID != nil {
		student.Parent = &models.Parent{ID: *parentID}
	}
	f.students = append(f.students, student)
	return nil
}

func (f *fakeStudentStore) FindByNameAndDOB(_ context.Context, firstName, lastName string, dob time.Time) ([]*models.Student, error) {
	var matches []*models.Student
	for _, st := range f.students {
		if strings.EqualFold(st.FirstName, firstName) &&
			strings.EqualFold(st.LastName, lastName) &&
			st.DateOfBirth.Equal(dob) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, st := range f.students {
		if st.ID == id {
			return st, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetAll(_ context.Context, schoolID int64) ([]*models.Student, error) {
	var out []*models.Student
	for _, st := range f.students {
		if schoolID == 0 || st.SchoolID == schoolID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) UpdateSchool(_ context.Context, studentID, schoolID int64) error {
	st, err := f.GetByID(context.Background(), studentID)
	if err != nil {
		return err
	}
	st.SchoolID = schoolID
	return nil
}

func (f *fakeStudentStore) AssignParent(_ context.Context, studentID, parentID int64) error {
	st, err := f.GetByID(context.Background(), studentID)
	if err != nil {
		return err
	}
	st.Parent = &models.Parent{ID: parentID}
	return nil
}

type fakeParentStore struct {
	parents []*models.Parent
	nextID  int64
}

func (f *fakeParentStore) Create(_ context.Context, parent *models.Parent) error {
	f.nextID++
	parent.ID = f.nextID
	f.parents = append(f.parents, parent)
	return nil
}

func (f *fakeParentStore) GetByID(_ context.Context, id int64) (*models.Parent, error) {
	for _, p := range f.parents {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrParentNotFound
}

func (f *fakeParentStore) GetAll(_ context.Context) ([]*models.Parent, error) {
	return f.parents, nil
}

func (f *fakeParentStore) CardNumberExists(_ context.Context, cardNumber string) (bool, error) {
	for _, p := range f.parents {
		if p.CardNumber != nil && *p.CardNumber == cardNumber {
			return true, nil
		}
	}
	return false, nil
}

type fakeSchoolStore struct {
	schools map[int64]*models.School
}

func (f *fakeSchoolStore) Create(_ context.Context, school *models.School) error {
	school.ID = int64(len(f.schools) + 1)
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolStore) GetByID(_ context.Context, id int64) (*models.School, error) {
	s, ok := f.schools[id]
	if !ok {
		return nil, apperrors.ErrSchoolNotFound
	}
	return s, nil
}

func (f *fakeSchoolStore) GetAll(_ context.Context) ([]*models.School, error) {
	var out []*models.School
	for _, s := range f.schools {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSchoolStore) Update(_ context.Context, school *models.School) error {
	f.schools[school.ID] = school
	return nil
}

func (f *fakeSchoolStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.schools[id]
	return ok, nil
}

type fakeReviewCreator struct {
	reviews []*models.DuplicateReview
}

func (f *fakeReviewCreator) Create(_ context.Context, review *models.DuplicateReview) error {
	review.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, review)
	return nil
}

type fakeFlagStore struct {
	flags  map[int64]*models.Flag
	nextID int64
}

func newFakeFlagStore() *fakeFlagStore {
	return &fakeFlagStore{flags: map[int64]*models.Flag{}}
}

func (f *fakeFlagStore) Create(_ context.Context, flag *models.Flag) error {
	f.nextID++
	flag.ID = f.nextID
	flag.CreatedAt = time.Now()
	f.flags[flag.ID] = flag
	return nil
}

func (f *fakeFlagStore) GetByID(_ context.Context, id int64) (*models.Flag, error) {
	flag, ok := f.flags[id]
	if !ok {
		return nil, apperrors.ErrFlagNotFound
	}
	return flag, nil
}

func (f *fakeFlagStore) Clear(_ context.Context, id, clearedBy int64) (*models.Flag, error) {
	flag, ok := f.flags[id]
	if !ok {
		return nil, apperrors.ErrFlagNotFound
	}
	if flag.Status != models.FlagFlagged {
		return nil, apperrors.ErrFlagAlreadyCleared
	}
	now := time.Now()
	flag.Status = models.FlagCleared
	flag.ClearedBy = &clearedBy
	flag.ClearedAt = &now
	return flag, nil
}

func (f *fakeFlagStore) GetAll(_ context.Context, schoolID int64) ([]*models.Flag, error) {
	var out []*models.Flag
	for _, flag := range f.flags {
		if schoolID == 0 || flag.SchoolID == schoolID {
			out = append(out, flag)
		}
	}
	return out, nil
}

func (f *fakeFlagStore) GetAuditLog(_ context.Context, _ int64) ([]*models.FlagAuditLog, error) {
	return nil, nil
}

func (f *fakeFlagStore) GetTotals(_ context.Context, _ int64) ([]*models.FlagTotals, error) {
	return nil, nil
}

type fakeConsentStore struct {
	consents []*models.Consent
}

func (f *fakeConsentStore) Create(_ context.Context, consent *models.Consent) error {
	for _, c := range f.consents {
		if c.StudentID == consent.StudentID && c.SchoolID == consent.SchoolID && c.Status == models.ConsentPending {
			return apperrors.ErrConsentAlreadyPending
		}
	}
	consent.ID = int64(len(f.consents) + 1)
	consent.Status = models.ConsentPending
	f.consents = append(f.consents, consent)
	return nil
}

func (f *fakeConsentStore) pending(id int64) *models.Consent {
	for _, c := range f.consents {
		if c.ID == id && c.Status == models.ConsentPending {
			return c
		}
	}
	return nil
}

func (f *fakeConsentStore) Approve(_ context.Context, id, approvedBy int64) error {
	c := f.pending(id)
	if c == nil {
		return apperrors.ErrConsentNotFound
	}
	c.Status = models.ConsentGranted
	c.ApprovedBy = &approvedBy
	return nil
}

func (f *fakeConsentStore) Reject(_ context.Context, id, approvedBy int64, reason string) error {
	c := f.pending(id)
	if c == nil {
		return apperrors.ErrConsentNotFound
	}
	c.Status = models.ConsentRejected
	c.ApprovedBy = &approvedBy
	c.RejectionReason = &reason
	return nil
}

func (f *fakeConsentStore) GetAll(_ context.Context, schoolID int64) ([]*models.Consent, error) {
	var out []*models.Consent
	for _, c := range f.consents {
		if schoolID == 0 || c.SchoolID == schoolID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConsentStore) HasGranted(_ context.Context, studentID, schoolID int64) (bool, error) {
	for _, c := range f.consents {
		if c.StudentID == studentID && c.SchoolID == schoolID && c.Status == models.ConsentGranted {
			return true, nil
		}
	}
	return false, nil
}

type fakeDisputeStore struct {
	disputes []*models.Dispute
}

func (f *fakeDisputeStore) Create(_ context.Context, dispute *models.Dispute) error {
	dispute.ID = int64(len(f.disputes) + 1)
	dispute.Status = models.DisputeOpen
	f.disputes = append(f.disputes, dispute)
	return nil
}

func (f *fakeDisputeStore) FindActiveByStudent(_ context.Context, studentID int64) (*models.Dispute, error) {
	for _, d := range f.disputes {
		if d.StudentID == studentID && d.Status.Active() {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeDisputeStore) GetByID(_ context.Context, id int64) (*models.Dispute, error) {
	for _, d := range f.disputes {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.ErrDisputeNotFound
}

func (f *fakeDisputeStore) GetAll(_ context.Context, studentID int64) ([]*models.Dispute, error) {
	var out []*models.Dispute
	for _, d := range f.disputes {
		if studentID == 0 || d.StudentID == studentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDisputeStore) MarkUnderReview(_ context.Context, id int64) error {
	d, err := f.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	if d.Status != models.DisputeOpen {
		return apperrors.ErrIllegalDisputeTransition
	}
	d.Status = models.DisputeUnderReview
	return nil
}

func (f *fakeDisputeStore) Resolve(_ context.Context, id int64, target models.DisputeStatus, resolvedBy int64, note string) error {
	d, err := f.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	if d.Status != models.DisputeUnderReview {
		return apperrors.ErrIllegalDisputeTransition
	}
	d.Status = target
	d.ResolvedBy = &resolvedBy
	if note != "" {
		d.ResolutionNote = &note
	}
	return nil
}

type fakeVerificationStore struct {
	students []*models.Student
	flags    []*models.Flag
	parents  []*models.Parent
	teachers []*models.Teacher
}

func (f *fakeVerificationStore) SearchStudents(_ context.Context, _ string) ([]*models.Student, error) {
	return f.students, nil
}

func (f *fakeVerificationStore) FlagsForStudents(_ context.Context, _ []int64) ([]*models.Flag, error) {
	var out []*models.Flag
	for _, flag := range f.flags {
		if flag.Status == models.FlagFlagged {
			out = append(out, flag)
		}
	}
	return out, nil
}

func (f *fakeVerificationStore) ParentsForStudents(_ context.Context, _ []int64) ([]*models.Parent, error) {
	return f.parents, nil
}

func (f *fakeVerificationStore) SearchTeachers(_ context.Context, _ string) ([]*models.Teacher, error) {
	return f.teachers, nil
}

type fakeReviewStore struct {
	reviews map[int64]*models.DuplicateReview
}

func (f *fakeReviewStore) GetByID(_ context.Context, id int64) (*models.DuplicateReview, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	return r, nil
}

func (f *fakeReviewStore) GetAll(_ context.Context, pendingOnly bool) ([]*models.DuplicateReview, error) {
	var out []*models.DuplicateReview
	for _, r := range f.reviews {
		if pendingOnly && r.Decision != nil {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviewStore) Decide(_ context.Context, id int64, decision models.ReviewDecision, reason string, decidedBy int64) (*models.DuplicateReview, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, apperrors.ErrReviewNotFound
	}
	if r.Decision != nil {
		return nil, apperrors.ErrReviewAlreadyDecided
	}
	now := time.Now()
	r.Decision = &decision
	r.Reason = &reason
	r.DecidedBy = &decidedBy
	r.DecidedAt = &now
	return r, nil
}
