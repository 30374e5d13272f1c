package keymaster

// Build-time tag/category agreement. An "invalid argument: index out of
// bounds" error here means a declaration in tags.go names a category that
// disagrees with the bits encoded in its tag value.
func _() {
	var x [1]struct{}
	_ = x[uint32(tagInvalid)&typeMask^uint32(TypeInvalid)]
	_ = x[uint32(tagPurpose)&typeMask^uint32(TypeEnumRep)]
	_ = x[uint32(tagAlgorithm)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagKeySize)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagBlockMode)&typeMask^uint32(TypeEnumRep)]
	_ = x[uint32(tagDigest)&typeMask^uint32(TypeEnumRep)]
	_ = x[uint32(tagPadding)&typeMask^uint32(TypeEnumRep)]
	_ = x[uint32(tagCallerNonce)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagMinMacLength)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagEcCurve)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagRSAPublicExponent)&typeMask^uint32(TypeUlong)]
	_ = x[uint32(tagIncludeUniqueID)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagBlobUsageRequirements)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagBootloaderOnly)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagRollbackResistance)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagHardwareType)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagActiveDatetime)&typeMask^uint32(TypeDate)]
	_ = x[uint32(tagOriginationExpireDatetime)&typeMask^uint32(TypeDate)]
	_ = x[uint32(tagUsageExpireDatetime)&typeMask^uint32(TypeDate)]
	_ = x[uint32(tagMinSecondsBetweenOps)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagMaxUsesPerBoot)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagUserID)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagUserSecureID)&typeMask^uint32(TypeUlongRep)]
	_ = x[uint32(tagNoAuthRequired)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagUserAuthType)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagAuthTimeout)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagAllowWhileOnBody)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagTrustedUserPresenceRequired)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagTrustedConfirmationRequired)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagUnlockedDeviceRequired)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagApplicationID)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagApplicationData)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagCreationDatetime)&typeMask^uint32(TypeDate)]
	_ = x[uint32(tagOrigin)&typeMask^uint32(TypeEnum)]
	_ = x[uint32(tagRootOfTrust)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagOSVersion)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagOSPatchlevel)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagUniqueID)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationChallenge)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationApplicationID)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDBrand)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDDevice)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDProduct)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDSerial)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDIMEI)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDMEID)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDManufacturer)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagAttestationIDModel)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagVendorPatchlevel)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagBootPatchlevel)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagAssociatedData)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagNonce)&typeMask^uint32(TypeBytes)]
	_ = x[uint32(tagMacLength)&typeMask^uint32(TypeUint)]
	_ = x[uint32(tagResetSinceIDRotation)&typeMask^uint32(TypeBool)]
	_ = x[uint32(tagConfirmationToken)&typeMask^uint32(TypeBytes)]
}
