package wizard

import (
	"medimarket-service/internal/app/models"
	"medimarket-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceBookAppointment(t *testing.T) {
	env := testEnv(FlowBookAppointment)
	doctor := approvedDoctorView()

	t.Run("Next without selection is refused", func(t *testing.T) {
		state := NewState("w", env.Flow, "", testNow)
		next, err := Reduce(state, Next{}, env)
		assert.ErrorIs(t, err, exceptions.ErrSelectionRequired)
		assert.Equal(t, models.StepSelectTarget, next.Step)
	})

	t.Run("Unapproved doctor cannot be selected", func(t *testing.T) {
		pending := models.NewViewModel(&models.Doctor{ID: 4})
		state := NewState("w", env.Flow, "", testNow)
		next, err := Reduce(state, SelectTarget{View: pending}, env)
		assert.ErrorIs(t, err, ErrDoctorNotApproved)
		assert.Nil(t, next.Selection)
	})

	t.Run("Wrong kind cannot be selected", func(t *testing.T) {
		state := NewState("w", env.Flow, "", testNow)
		_, err := Reduce(state, SelectTarget{View: medicineView(3, true)}, env)
		assert.ErrorIs(t, err, exceptions.ErrSelectionRequired)
	})

	t.Run("Selection then details then confirm", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		assert.Equal(t, models.StepConfirm, state.Step)
		require.NotNil(t, state.Selection)
		assert.Equal(t, "Dr. Ada", state.Selection.Label)
		assert.Equal(t, models.EntityRef{Kind: models.KindDoctor, ID: 3}, state.Selection.Ref)
		assert.Empty(t, state.FieldErrors)
	})

	t.Run("Does not advance while time range is inverted", func(t *testing.T) {
		fields := validAppointmentFields()
		fields["time_to"] = "08:00"
		state := NewState("w", env.Flow, "", testNow)
		state, _ = Reduce(state, SelectTarget{View: doctor}, env)
		state, _ = Reduce(state, Next{}, env)
		for name, value := range fields {
			state, _ = Reduce(state, EditField{Field: name, Value: value}, env)
		}

		next, err := Reduce(state, Next{}, env)
		assert.ErrorIs(t, err, exceptions.ErrStepValidation)
		assert.Equal(t, models.StepEnterDetails, next.Step)
		assert.Contains(t, next.FieldErrors, "time_to")
	})

	t.Run("Does not advance with a past date", func(t *testing.T) {
		state := NewState("w", env.Flow, "", testNow)
		state, _ = Reduce(state, SelectTarget{View: doctor}, env)
		state, _ = Reduce(state, Next{}, env)
		fields := validAppointmentFields()
		fields["date"] = "2026-03-09"
		for name, value := range fields {
			state, _ = Reduce(state, EditField{Field: name, Value: value}, env)
		}

		next, err := Reduce(state, Next{}, env)
		assert.ErrorIs(t, err, exceptions.ErrStepValidation)
		assert.Equal(t, "date cannot be in the past", next.FieldErrors["date"])
	})

	t.Run("Editing a field clears only its error", func(t *testing.T) {
		state := NewState("w", env.Flow, "", testNow)
		state, _ = Reduce(state, SelectTarget{View: doctor}, env)
		state, _ = Reduce(state, Next{}, env)
		state, _ = Reduce(state, Next{}, env)
		require.Contains(t, state.FieldErrors, "date")
		require.Contains(t, state.FieldErrors, "category")

		next, err := Reduce(state, EditField{Field: "date", Value: "bad"}, env)
		require.NoError(t, err)
		assert.NotContains(t, next.FieldErrors, "date")
		assert.Contains(t, next.FieldErrors, "category")
		assert.Contains(t, state.FieldErrors, "date", "input state is not mutated")
	})

	t.Run("Back walks to the previous step", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		state, err := Reduce(state, Back{}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepEnterDetails, state.Step)
		state, err = Reduce(state, Back{}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepSelectTarget, state.Step)
		_, err = Reduce(state, Back{}, env)
		assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
	})

	t.Run("Fields cannot be edited on the recap", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		_, err := Reduce(state, EditField{Field: "notes", Value: "x"}, env)
		assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
	})
}

func TestReduceSubmission(t *testing.T) {
	env := testEnv(FlowBookAppointment)
	doctor := approvedDoctorView()

	t.Run("Submission status moves idle to submitting to succeeded", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		assert.Equal(t, models.SubmissionIdle, state.SubmissionStatus)

		state, err := Reduce(state, SubmitStarted{IdempotencyKey: "k1"}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepSubmitting, state.Step)
		assert.Equal(t, models.SubmissionSubmitting, state.SubmissionStatus)
		assert.Equal(t, "k1", state.IdempotencyKey)

		again, err := Reduce(state, SubmitStarted{IdempotencyKey: "k2"}, env)
		assert.ErrorIs(t, err, exceptions.ErrSubmissionInFlight)
		assert.Equal(t, "k1", again.IdempotencyKey)

		_, err = Reduce(state, Reset{}, env)
		assert.ErrorIs(t, err, exceptions.ErrSubmissionInFlight)

		state, err = Reduce(state, SubmitSucceeded{Receipt: models.TransactionReceipt{TxHash: "0x1"}, ContentRef: "cas://a"}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepSucceeded, state.Step)
		assert.Equal(t, models.SubmissionSucceeded, state.SubmissionStatus)
		assert.Equal(t, "cas://a", state.ContentRef)

		_, err = Reduce(state, SubmitStarted{IdempotencyKey: "k3"}, env)
		assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
	})

	t.Run("Retryable failure returns to confirm and allows a retry", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		state, _ = Reduce(state, SubmitStarted{IdempotencyKey: "k1"}, env)

		state, err := Reduce(state, SubmitFailed{Failure: Classify(exceptions.ErrUserRejected)}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepConfirm, state.Step)
		assert.Equal(t, models.SubmissionFailed, state.SubmissionStatus)
		require.NotNil(t, state.LastFailure)
		assert.Equal(t, models.FailureUserRejected, state.LastFailure.Class)

		state, err = Reduce(state, SubmitStarted{IdempotencyKey: "k2"}, env)
		require.NoError(t, err)
		assert.Equal(t, "k2", state.IdempotencyKey)
		assert.Nil(t, state.LastFailure)
	})

	t.Run("Precondition failure returns to details", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		state, _ = Reduce(state, SubmitStarted{IdempotencyKey: "k1"}, env)
		state, err := Reduce(state, SubmitFailed{Failure: Classify(exceptions.NewPreconditionFailed("doctor not approved"))}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepEnterDetails, state.Step)
	})

	t.Run("Submit re-validates and sends invalid input back", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		state.FormFields["date"] = "2026-03-01"

		next, err := Reduce(state, SubmitStarted{IdempotencyKey: "k1"}, env)
		assert.ErrorIs(t, err, exceptions.ErrStepValidation)
		assert.Equal(t, models.StepEnterDetails, next.Step)
		assert.Equal(t, models.SubmissionIdle, next.SubmissionStatus)
		require.NotNil(t, next.LastFailure)
		assert.Equal(t, models.FailureValidation, next.LastFailure.Class)
		assert.Contains(t, next.FieldErrors, "date")
	})

	t.Run("Reset starts over", func(t *testing.T) {
		state := confirmState(FlowBookAppointment, &doctor, validAppointmentFields())
		state, err := Reduce(state, Reset{}, env)
		require.NoError(t, err)
		assert.Equal(t, models.StepSelectTarget, state.Step)
		assert.Nil(t, state.Selection)
		assert.Empty(t, state.FormFields)
		assert.Equal(t, "wiz-1", state.ID)
	})
}

func TestReduceListMedicine(t *testing.T) {
	env := testEnv(FlowListMedicine)

	state := NewState("w", env.Flow, "admin", testNow)
	assert.Equal(t, models.StepEnterDetails, state.Step)

	_, err := Reduce(state, SelectTarget{View: medicineView(1, true)}, env)
	assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
	_, err = Reduce(state, Back{}, env)
	assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
}

func TestReducePurchaseQuantityBoundedByStock(t *testing.T) {
	env := testEnv(FlowPurchaseMedicine)
	medicine := medicineView(2, true)

	state := NewState("w", env.Flow, "", testNow)
	state, _ = Reduce(state, SelectTarget{View: medicine}, env)
	state, _ = Reduce(state, Next{}, env)
	state, _ = Reduce(state, EditField{Field: "quantity", Value: "3"}, env)
	state, _ = Reduce(state, EditField{Field: "shipping_address", Value: "1 Main St"}, env)

	next, err := Reduce(state, Next{}, env)
	assert.ErrorIs(t, err, exceptions.ErrStepValidation)
	assert.Equal(t, "quantity must be less than or equal to 2", next.FieldErrors["quantity"])

	_, err = Reduce(NewState("w", env.Flow, "", testNow), SelectTarget{View: medicineView(0, true)}, env)
	assert.ErrorIs(t, err, ErrMedicineNotAvailable)
}

func TestBuildConfirmation(t *testing.T) {
	env := testEnv(FlowPurchaseMedicine)
	medicine := medicineView(10, true)
	state := confirmState(FlowPurchaseMedicine, &medicine, map[string]any{"quantity": "3", "shipping_address": "1 Main St"})

	confirmation, err := BuildConfirmation(state, env)
	require.NoError(t, err)
	assert.Equal(t, "0.0080", confirmation.Quote.FinalUnitPrice)
	assert.Equal(t, "0.0240", confirmation.Quote.TotalPrice)
	assert.Equal(t, int64(3), confirmation.Quote.Quantity)

	early := NewState("w", env.Flow, "", testNow)
	_, err = BuildConfirmation(early, env)
	assert.ErrorIs(t, err, exceptions.ErrInvalidStep)
}
