package models

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&AccountTokenModel{},
		&CaregiverProfileModel{},
		&ProviderProfileModel{},
		&HomeModel{},
		&ResidentModel{},
		&FamilyModel{},
		&FamilyMemberModel{},
		&FamilyActivityModel{},
		&LeadModel{},
		&MessageModel{},
		&AppointmentModel{},
		&AppointmentParticipantModel{},
		&AvailabilitySlotModel{},
		&FamilyDocumentModel{},
		&DocumentCommentModel{},
		&ShiftModel{},
		&ShiftApplicationModel{},
		&PaymentModel{},
		&ComplianceItemModel{},
		&AssessmentModel{},
		&NotificationModel{},
		&AuditLogModel{},
	}
}
